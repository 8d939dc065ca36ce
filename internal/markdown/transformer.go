package markdown

import (
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/doctheme/internal/admonition"
	"git.home.luguber.info/inful/doctheme/internal/codeblock"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

var (
	modeProviderKey = parser.NewContextKey()
	attributesKey   = parser.NewContextKey()
	resultKey       = parser.NewContextKey()
)

// Result summarizes one conversion.
type Result struct {
	Mode       theme.Mode
	ModeSource theme.Source
	// Layouts counts code blocks per layout.
	Layouts map[codeblock.Layout]int
	// UnknownAdmonitions lists container kinds that fell back to the default.
	UnknownAdmonitions []string

	err error
}

// fenceTransformer resolves the page mode once and swaps every fenced code
// block for a CodeBlock carrying its render context.
type fenceTransformer struct{}

func (t *fenceTransformer) Transform(doc *gmast.Document, reader text.Reader, pc parser.Context) {
	res := &Result{Layouts: map[codeblock.Layout]int{}}
	pc.Set(resultKey, res)

	provider, _ := pc.Get(modeProviderKey).(theme.Provider)
	attrs, _ := pc.Get(attributesKey).(theme.AttributeSource)
	mode, source, err := theme.Resolver{Provider: provider, Attributes: attrs}.ResolveWithSource()
	if err != nil {
		res.err = err
		return
	}
	res.Mode, res.ModeSource = mode, source

	src := reader.Source()
	var fenced []*gmast.FencedCodeBlock
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.FencedCodeBlock:
			fenced = append(fenced, node)
			return gmast.WalkSkipChildren, nil
		case *gmast.CodeBlock:
			res.Layouts[codeblock.LayoutFallback]++
			return gmast.WalkSkipChildren, nil
		case *Admonition:
			if _, ok := admonition.Lookup(node.AdmonitionType); !ok {
				res.UnknownAdmonitions = append(res.UnknownAdmonitions, node.AdmonitionType)
			}
		}
		return gmast.WalkContinue, nil
	})

	for _, node := range fenced {
		raw := linesText(node, src)
		meta := codeblock.ParseFence(fenceInfo(node, src), raw)
		cb := NewCodeBlock(codeblock.NewRenderContext(meta, mode), raw)
		cb.SetBlankPreviousLines(node.HasBlankPreviousLines())
		node.Parent().ReplaceChild(node.Parent(), node, cb)
		res.Layouts[codeblock.LayoutComposed]++
	}
}
