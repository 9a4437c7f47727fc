// Package http provides the two connection pools used by a run.
//
// Album pages and cover art images are served by different hosts, so each
// gets its own pool:
//   - Client fetches album pages
//   - ArtClient fetches cover art images into memory
//
// Both are created once per run and released with Close:
//
//	pages := http.NewClient(http.WithUserAgent("AlbumArtDownloader"))
//	defer pages.Close()
//
//	art := http.NewArtClient()
//	defer art.Close()
//
//	page, err := pages.Get(ctx, link)
//	image, err := art.Fetch(ctx, imageURL)
//
// Neither client retries a failed request.
package http
