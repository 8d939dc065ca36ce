// Package markup builds and serializes small presentational HTML trees.
package markup

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a key/value pair. Attributes keep their order so output is byte-stable.
type Attr [2]string

// Element returns a node for a. Attributes with empty values and nil children are skipped.
func Element(a atom.Atom, attrs []Attr, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, at := range attrs {
		if at[1] == "" {
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: at[0], Val: at[1]})
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// Foreign returns an element with no atom, such as the SVG shapes.
func Foreign(name string, attrs []Attr, children ...*html.Node) *html.Node {
	n := Element(0, attrs, children...)
	n.Data = name
	return n
}

// Text returns a text node; it is escaped on render.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Comment returns a comment node.
func Comment(s string) *html.Node {
	return &html.Node{Type: html.CommentNode, Data: s}
}

// Classes joins the non-blank class names.
func Classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

// Render serializes a tree.
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
