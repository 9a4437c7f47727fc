// Package catalog extracts album information from catalog site album pages.
//
// Album pages carry their metadata in <meta> elements in the document head:
//
//	<meta name="title" content="Album Title">
//	<meta property="og:image" content="https://img.example/cover.jpg">
//
// # Album Page Parsing
//
//	parser := catalog.NewParser()
//	meta, err := parser.ParseAlbumPage(page)
//	switch {
//	case errors.Is(err, catalog.ErrNoTitle):
//	    // page has no title
//	case errors.Is(err, catalog.ErrNoArt):
//	    // page has a title but no cover art
//	}
//
// The title is always checked first, so a page missing both fields reports
// ErrNoTitle only.
package catalog
