// Package model defines the core data structures used throughout
// the albumart-downloader application.
//
// # Link and Identifier
//
// A Link is the URL of an album page. Its trailing IdentifierLength
// characters form the Identifier that is embedded into every downloaded
// cover so later runs can recognise it:
//
//	link := model.Link("https://music.example/album/ABCDEFGHIJKLMNOPQ")
//	fmt.Println(link.Identifier()) // ABCDEFGHIJKLMNOPQ
//
// Two different links that share the same suffix are treated as the same
// album. Nothing validates that suffixes are unique.
//
// # DownloadTask
//
// A DownloadTask pairs the metadata found on an album page with the
// identifier of the link it came from:
//
//	task := model.NewDownloadTask(link, model.AlbumMetadata{
//	    Title:  "Test Album",
//	    ArtURL: "https://img.example/a.jpg",
//	})
package model
