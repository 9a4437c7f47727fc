package http

import (
	"context"
	"net/http"

	"github.com/cavaliercoder/grab"
)

const artFileName = "cover.jpg"

// ArtClient downloads cover art images over a dedicated connection pool.
//
// Images are kept in memory so they can be tagged before they are written to
// disk. Each download is a single attempt: no resume, no retry.
//
// Example usage:
//
//	art := NewArtClient()
//	defer art.Close()
//
//	data, err := art.Fetch(ctx, "https://img.example/a.jpg")
type ArtClient struct {
	pool   *http.Client
	client *grab.Client
}

// NewArtClient creates a new ArtClient.
func NewArtClient(opts ...Option) *ArtClient {
	o := newOptions(opts)
	pool := newPool(o)

	client := grab.NewClient()
	client.HTTPClient = pool
	client.UserAgent = o.userAgent

	return &ArtClient{
		pool:   pool,
		client: client,
	}
}

// Fetch downloads the image at url and returns its bytes.
//
// Returns an error if the request fails or the server responds with a
// non-2xx status.
func (c *ArtClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	// The destination name is never written to with NoStore set; naming it
	// stops grab from deriving one from the URL.
	req, err := grab.NewRequest(artFileName, url)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.NoStore = true
	req.NoResume = true

	resp := c.client.Do(req)
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp.Bytes()
}

// Close releases the idle connections held by the pool.
func (c *ArtClient) Close() {
	c.pool.CloseIdleConnections()
}
