// Package artwork stores downloaded cover art together with the identifier
// of the album page it came from.
//
// # Identifier Tags
//
// The identifier is embedded as the EXIF ImageDescription field of the
// JPEG file itself. There is no separate index: the art directory is the
// only record of what has been downloaded.
//
//	tagger := artwork.NewTagger()
//	err := tagger.WriteTagged(jpegBytes, "ABCDEFGHIJKLMNOPQ", "album_arts/Title.jpg")
//
//	id, err := tagger.ReadIdentifier("album_arts/Title.jpg")
//
// # Scanning
//
// ScanExisting reads the identifier of every file in a directory:
//
//	ids, err := tagger.ScanExisting("album_arts")
//	// err lists the files that were skipped; ids is always usable
//
// # Inspection
//
// Inspect decodes just the image header to report format and dimensions.
package artwork
