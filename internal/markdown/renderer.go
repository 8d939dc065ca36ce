package markdown

import (
	"fmt"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doctheme/internal/admonition"
	"git.home.luguber.info/inful/doctheme/internal/codeblock"
)

// themeRenderer draws code blocks through the Composer and containers through
// the admonition Frame. It takes over indented code blocks too: those have no
// fence metadata, so they always take the fallback layout.
type themeRenderer struct {
	composer    *codeblock.Composer
	admonitions *admonition.Renderer
}

func (r *themeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCodeBlock, r.renderCodeBlock)
	reg.Register(gmast.KindCodeBlock, r.renderIndentedCodeBlock)
	reg.Register(KindAdmonition, r.renderAdmonition)
}

func (r *themeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	n := node.(*CodeBlock)
	return r.compose(w, n.Context.Probe, n.Raw)
}

func (r *themeRenderer) renderIndentedCodeBlock(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	var none *codeblock.RenderContext
	return r.compose(w, none.Probe, linesText(node, source))
}

func (r *themeRenderer) compose(w util.BufWriter, probe func() (*codeblock.RenderContext, error), raw string) (gmast.WalkStatus, error) {
	tree, _, err := r.composer.ComposeFrom(probe, raw)
	if err != nil {
		return gmast.WalkStop, err
	}
	if err := html.Render(w, tree); err != nil {
		return gmast.WalkStop, fmt.Errorf("render code block: %w", err)
	}
	_ = w.WriteByte('\n')
	return gmast.WalkSkipChildren, nil
}

func (r *themeRenderer) renderAdmonition(w util.BufWriter, source []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	n := node.(*Admonition)
	if entering {
		open, closing, err := r.admonitions.Frame(admonition.Props{Kind: n.AdmonitionType, Title: n.Title})
		if err != nil {
			return gmast.WalkStop, err
		}
		n.closing = closing
		_, _ = w.WriteString(open)
		_ = w.WriteByte('\n')
		return gmast.WalkContinue, nil
	}
	_, _ = w.WriteString(n.closing)
	_ = w.WriteByte('\n')
	return gmast.WalkContinue, nil
}
