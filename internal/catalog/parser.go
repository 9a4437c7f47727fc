package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/handiism/albumart-downloader/internal/model"
)

var (
	// ErrNoTitle is returned when an album page has no title metadata.
	ErrNoTitle = errors.New("no album title")

	// ErrNoArt is returned when an album page has a title but no cover art link.
	ErrNoArt = errors.New("no album art link")
)

// Parser extracts album metadata from album page HTML.
//
// The title is read from <meta name="title">, falling back to
// <meta property="og:title">. The cover art URL is read from
// <meta property="og:image">. Elements without a non-blank content
// attribute are ignored.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseAlbumPage extracts the album title and cover art URL from page.
//
// Returns ErrNoTitle if no title is present, otherwise ErrNoArt if no cover
// art link is present.
func (p *Parser) ParseAlbumPage(page []byte) (model.AlbumMetadata, error) {
	document, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return model.AlbumMetadata{}, fmt.Errorf("parsing html: %w", err)
	}

	tags := collectMetaTags(document)

	title := tags.name["title"]
	if title == "" {
		title = tags.property["og:title"]
	}
	if title == "" {
		return model.AlbumMetadata{}, ErrNoTitle
	}

	artURL := tags.property["og:image"]
	if artURL == "" {
		return model.AlbumMetadata{Title: title}, ErrNoArt
	}

	return model.AlbumMetadata{Title: title, ArtURL: artURL}, nil
}

// metaTags holds the first non-blank content value of each <meta> element,
// keyed by its name or property attribute.
type metaTags struct {
	name     map[string]string
	property map[string]string
}

func collectMetaTags(document *html.Node) metaTags {
	tags := metaTags{
		name:     make(map[string]string),
		property: make(map[string]string),
	}

	walkNodesPreOrder(document, func(node *html.Node) bool {
		if node.Type != html.ElementNode || node.DataAtom != atom.Meta {
			return true
		}

		content := strings.TrimSpace(getNodeAttr(node, "content"))
		if content == "" {
			return false
		}
		if name := getNodeAttr(node, "name"); name != "" {
			if _, seen := tags.name[name]; !seen {
				tags.name[name] = content
			}
		}
		if property := getNodeAttr(node, "property"); property != "" {
			if _, seen := tags.property[property]; !seen {
				tags.property[property] = content
			}
		}
		return false
	})

	return tags
}

// getNodeAttr returns the value for an attribute in a node, or "" if no such
// attribute is present.
func getNodeAttr(node *html.Node, attrName string) string {
	for index := range node.Attr {
		if node.Attr[index].Key == attrName {
			return node.Attr[index].Val
		}
	}
	return ""
}

// walkNodesPreOrder calls walker on each node in pre-order. If walker returns
// false, the given node's children are skipped.
func walkNodesPreOrder(node *html.Node, walker func(*html.Node) bool) {
	if !walker(node) {
		return
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		walkNodesPreOrder(c, walker)
	}
}
