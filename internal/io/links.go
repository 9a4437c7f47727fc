package ioutils

import (
	"os"
	"strings"

	"github.com/handiism/albumart-downloader/internal/model"
)

// DefaultLinkDelimiter separates entries in a link list file.
const DefaultLinkDelimiter = ", "

// ReadLinks reads the link list at path. See ParseLinks.
func ReadLinks(path, delimiter string) ([]model.Link, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLinks(string(data), delimiter), nil
}

// ParseLinks splits a link list into links, in file order.
//
// Entries are separated by delimiter or by line breaks. Surrounding
// whitespace is trimmed and empty entries are dropped; duplicates are
// kept. There is no escaping: a URL containing the delimiter is split.
func ParseLinks(content, delimiter string) []model.Link {
	if delimiter == "" {
		delimiter = DefaultLinkDelimiter
	}

	var links []model.Link
	for _, line := range strings.Split(content, "\n") {
		for _, entry := range strings.Split(line, delimiter) {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			links = append(links, model.Link(entry))
		}
	}
	return links
}
