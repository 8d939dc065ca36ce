package theme

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LoadDocumentAttributes parses an HTML layout and returns the attributes of its
// root <html> element, e.g. a persisted data-theme marker.
func LoadDocumentAttributes(r io.Reader) (StaticAttributes, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	attrs := StaticAttributes{}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.Html {
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
			break
		}
	}
	return attrs, nil
}
