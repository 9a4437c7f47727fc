package download

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/handiism/albumart-downloader/internal/artwork"
	"github.com/handiism/albumart-downloader/internal/http"
	ioutils "github.com/handiism/albumart-downloader/internal/io"
	"github.com/handiism/albumart-downloader/internal/model"
)

// coverExtension is appended to every sanitized album title.
const coverExtension = ".jpg"

// Fetcher downloads cover art and stores it tagged with its identifier.
type Fetcher struct {
	client *http.ArtClient
	tagger *artwork.Tagger
	dir    string
}

// NewFetcher creates a Fetcher saving covers into dir.
func NewFetcher(client *http.ArtClient, tagger *artwork.Tagger, dir string) *Fetcher {
	return &Fetcher{
		client: client,
		tagger: tagger,
		dir:    dir,
	}
}

// Fetch downloads the image at url in a single attempt.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.client.Fetch(ctx, url)
}

// Path returns the file a cover for title is saved to. Path separators in
// the title are replaced with spaces.
func (f *Fetcher) Path(title string) string {
	return filepath.Join(f.dir, ioutils.SanitizeTitle(title)+coverExtension)
}

// Store writes data to Path(title) tagged with identifier, replacing any
// existing file of the same name.
//
// The data must be a JPEG image; other formats are rejected rather than
// converted.
func (f *Fetcher) Store(data []byte, title string, identifier model.Identifier) (string, artwork.Info, error) {
	info, err := artwork.Inspect(data)
	if err != nil {
		return "", info, fmt.Errorf("decoding image: %w", err)
	}
	if !info.IsJPEG() {
		return "", info, fmt.Errorf("%w: got %s", artwork.ErrNotJPEG, info.Format)
	}

	path := f.Path(title)
	if err := f.tagger.WriteTagged(data, identifier, path); err != nil {
		return "", info, err
	}
	return path, info, nil
}
