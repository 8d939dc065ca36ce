package codeblock

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doctheme/internal/markup"
)

// RenderHTML serializes a presentational tree.
func RenderHTML(n *html.Node) (string, error) {
	return markup.Render(n)
}
