package artwork

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jis "github.com/dsoprea/go-jpeg-image-structure/v2"

	ioutils "github.com/handiism/albumart-downloader/internal/io"
	"github.com/handiism/albumart-downloader/internal/model"
)

// IdentifierTagName is the IFD0 tag holding the identifier.
const IdentifierTagName = "ImageDescription"

var (
	// ErrNotJPEG is returned when the image data is not a JPEG file.
	ErrNotJPEG = errors.New("not a JPEG image")

	// ErrNoIdentifier is returned when an image carries no identifier tag.
	ErrNoIdentifier = errors.New("no identifier tag")
)

// Tagger embeds and reads identifier tags in JPEG files.
//
// Tagger uses the go-exif library to write the EXIF ImageDescription field.
// Existing EXIF data in the image is preserved; only the identifier field is
// replaced.
//
// Example:
//
//	tagger := NewTagger()
//	err := tagger.WriteTagged(data, link.Identifier(), "album_arts/Title.jpg")
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Embed returns a copy of the JPEG data with identifier stored in its EXIF
// ImageDescription field.
func (t *Tagger) Embed(data []byte, identifier model.Identifier) ([]byte, error) {
	segments, err := parseSegments(data)
	if err != nil {
		return nil, err
	}

	rootIb, err := segments.ConstructExifBuilder()
	if err != nil {
		// No usable EXIF segment yet; start a fresh IFD0.
		rootIb, err = newRootIfdBuilder()
		if err != nil {
			return nil, err
		}
	}

	if err := rootIb.SetStandardWithName(IdentifierTagName, string(identifier)); err != nil {
		return nil, fmt.Errorf("setting %s: %w", IdentifierTagName, err)
	}
	if err := segments.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("setting exif: %w", err)
	}

	var buf bytes.Buffer
	if err := segments.Write(&buf); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTagged embeds identifier in data and writes the result to path,
// replacing any existing file. The write is atomic: path either keeps its
// previous content or holds the complete tagged image.
func (t *Tagger) WriteTagged(data []byte, identifier model.Identifier, path string) error {
	tagged, err := t.Embed(data, identifier)
	if err != nil {
		return err
	}
	return ioutils.WriteFileAtomic(path, tagged)
}

// Identifier returns the identifier embedded in the JPEG data.
func (t *Tagger) Identifier(data []byte) (model.Identifier, error) {
	segments, err := parseSegments(data)
	if err != nil {
		return "", err
	}

	rootIfd, _, err := segments.Exif()
	if err != nil {
		return "", ErrNoIdentifier
	}

	results, err := rootIfd.FindTagWithName(IdentifierTagName)
	if err != nil || len(results) == 0 {
		return "", ErrNoIdentifier
	}

	value, err := results[0].Value()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", IdentifierTagName, err)
	}
	identifier, ok := value.(string)
	if !ok || identifier == "" {
		return "", ErrNoIdentifier
	}
	return model.Identifier(identifier), nil
}

// ReadIdentifier returns the identifier embedded in the file at path.
func (t *Tagger) ReadIdentifier(path string) (model.Identifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return t.Identifier(data)
}

func parseSegments(data []byte) (*jis.SegmentList, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return nil, ErrNotJPEG
	}

	intfc, err := jis.NewJpegMediaParser().ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJPEG, err)
	}

	segments, ok := intfc.(*jis.SegmentList)
	if !ok {
		return nil, ErrNotJPEG
	}
	return segments, nil
}

func newRootIfdBuilder() (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, err
	}
	ti := exif.NewTagIndex()
	return exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder), nil
}
