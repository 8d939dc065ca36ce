package markdown

import (
	"strconv"

	gmast "github.com/yuin/goldmark/ast"

	"git.home.luguber.info/inful/doctheme/internal/codeblock"
)

// KindCodeBlock is the node kind of a themed code block.
var KindCodeBlock = gmast.NewNodeKind("ThemeCodeBlock")

// CodeBlock replaces a fenced code block once its render context is known.
type CodeBlock struct {
	gmast.BaseBlock

	// Context is nil when the block was produced without a page mode.
	Context *codeblock.RenderContext
	// Raw is the unprocessed fence body, used by the fallback layout.
	Raw string
}

// NewCodeBlock returns a CodeBlock node.
func NewCodeBlock(ctx *codeblock.RenderContext, raw string) *CodeBlock {
	return &CodeBlock{Context: ctx, Raw: raw}
}

func (n *CodeBlock) Kind() gmast.NodeKind { return KindCodeBlock }

func (n *CodeBlock) IsRaw() bool { return true }

func (n *CodeBlock) Dump(source []byte, level int) {
	kv := map[string]string{"Raw": n.Raw}
	if n.Context != nil {
		meta := n.Context.Metadata()
		kv["Language"] = meta.Language
		kv["Mode"] = n.Context.Mode().String()
	}
	gmast.DumpHelper(n, source, level, kv, nil)
}

// KindAdmonition is the node kind of a ":::kind" container.
var KindAdmonition = gmast.NewNodeKind("Admonition")

// Admonition is a callout container. Its children are regular block nodes.
type Admonition struct {
	gmast.BaseBlock

	AdmonitionType string // as written; resolved at render time
	Title          string

	fence   int    // number of colons in the opening line
	closing string // set while rendering
}

// NewAdmonition returns an Admonition node.
func NewAdmonition(kind, title string) *Admonition {
	return &Admonition{AdmonitionType: kind, Title: title, fence: 3}
}

func (n *Admonition) Kind() gmast.NodeKind { return KindAdmonition }

func (n *Admonition) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"Type":  n.AdmonitionType,
		"Title": n.Title,
		"Fence": strconv.Itoa(n.fence),
	}, nil)
}
