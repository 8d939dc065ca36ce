// Package markdown hosts the theme inside goldmark: fenced code becomes themed
// code blocks and ":::kind" containers become admonitions.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Options controls how Markdown is parsed for analysis.
type Options struct {
	// Containers enables the ":::kind" admonition syntax.
	Containers bool
}

// Fence is one fenced code block found by ExtractFences.
type Fence struct {
	Info string // full info string, e.g. `go title="main.go" {2}`
	Body string // raw content, trailing newline included
	Line int    // 1-based line of the first content line
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte, opts Options) (gmast.Node, error) {
	var md goldmark.Markdown
	if opts.Containers {
		md = goldmark.New(goldmark.WithParserOptions(containerParserOption()))
	} else {
		md = goldmark.New()
	}
	return md.Parser().Parse(text.NewReader(body)), nil
}

// ExtractFences lists the fenced code blocks of a Markdown body in document order.
//
// This is an analysis API; nothing is rendered.
func ExtractFences(body []byte, opts Options) ([]Fence, error) {
	root, err := ParseBody(body, opts)
	if err != nil {
		return nil, err
	}

	fences := make([]Fence, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		node, ok := n.(*gmast.FencedCodeBlock)
		if !ok {
			return gmast.WalkContinue, nil
		}
		f := Fence{Info: fenceInfo(node, body), Body: linesText(node, body)}
		if node.Lines().Len() > 0 {
			f.Line = bytes.Count(body[:node.Lines().At(0).Start], []byte("\n")) + 1
		}
		fences = append(fences, f)
		return gmast.WalkSkipChildren, nil
	})
	return fences, nil
}

func fenceInfo(n *gmast.FencedCodeBlock, source []byte) string {
	if n.Info == nil {
		return ""
	}
	return string(n.Info.Segment.Value(source))
}

func linesText(n gmast.Node, source []byte) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
