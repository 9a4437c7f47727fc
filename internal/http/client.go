package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultUserAgent = "AlbumArtDownloader"
	defaultTimeout   = 60 * time.Second
)

// Option configures a Client or an ArtClient.
type Option func(*options)

type options struct {
	userAgent string
	timeout   time.Duration
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithTimeout sets the overall timeout of a single request. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func newOptions(opts []Option) options {
	o := options{
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newPool returns an http.Client backed by its own transport, so that
// connections are never shared with another pool.
func newPool(o options) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	return &http.Client{
		Transport: transport,
		Timeout:   o.timeout,
	}
}

// Client fetches album pages over a dedicated connection pool.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Connection reuse across all page requests of a run
//
// Example usage:
//
//	client := NewClient()
//	defer client.Close()
//
//	page, err := client.Get(ctx, "https://music.example/album/ABCDEFGHIJKLMNOPQ")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new page Client.
//
// By default the client uses a 60 second timeout and the
// "AlbumArtDownloader" User-Agent header.
func NewClient(opts ...Option) *Client {
	o := newOptions(opts)
	return &Client{
		httpClient: newPool(o),
		userAgent:  o.userAgent,
	}
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// Close releases the idle connections held by the pool.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
