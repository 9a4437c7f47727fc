package model

// AlbumMetadata holds the fields extracted from an album page.
type AlbumMetadata struct {
	// Title is the album title.
	Title string

	// ArtURL is the URL of the cover art image.
	ArtURL string
}

// DownloadTask describes one cover to download.
//
// The task is created by the page stage and executed by the download
// stage once every album page has been processed.
type DownloadTask struct {
	// Link is the album page the task was created from.
	Link Link

	// Identifier is embedded into the saved image.
	Identifier Identifier

	// Title is the unsanitized album title.
	Title string

	// ArtURL is the cover art URL to download.
	ArtURL string
}

// NewDownloadTask creates a DownloadTask for the album found at link.
func NewDownloadTask(link Link, meta AlbumMetadata) *DownloadTask {
	return &DownloadTask{
		Link:       link,
		Identifier: link.Identifier(),
		Title:      meta.Title,
		ArtURL:     meta.ArtURL,
	}
}
