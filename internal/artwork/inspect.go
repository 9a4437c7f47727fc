package artwork

import (
	"bytes"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Info describes a downloaded image.
type Info struct {
	Format string
	Width  int
	Height int
}

// IsJPEG reports whether the image is a JPEG and can carry an identifier tag.
func (i Info) IsJPEG() bool {
	return i.Format == "jpeg"
}

// Inspect decodes the image header to determine format and dimensions.
// The pixel data is not decoded.
func Inspect(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, err
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
