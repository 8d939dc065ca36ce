package codeblock

import (
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/doctheme/internal/highlight"
	"git.home.luguber.info/inful/doctheme/internal/markup"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// Renderer lays out token lines as the scrollable content region of a block.
type Renderer struct {
	palettes highlight.Palettes
}

// NewRenderer returns a renderer that paints blocks with palettes.
func NewRenderer(palettes highlight.Palettes) *Renderer {
	return &Renderer{palettes: palettes}
}

// Render builds the <pre> region for meta. Each token line becomes one row,
// annotated with meta.LineClassNames; rows are numbered from
// meta.LineNumbersStart when it is set.
func (r *Renderer) Render(meta Metadata, mode theme.Mode, tokens []highlight.TokenLine) *html.Node {
	numbered := meta.ShowLineNumbers()

	codeClass := "codeBlockLines"
	counterReset := ""
	if numbered {
		codeClass = markup.Classes(codeClass, "codeBlockLinesWithNumbering")
		counterReset = "counter-reset:line-count " + strconv.Itoa(*meta.LineNumbersStart-1)
	}
	code := markup.Element(atom.Code, []markup.Attr{{"class", codeClass}, {"style", counterReset}})

	for i, line := range tokens {
		row := markup.Element(atom.Span, []markup.Attr{{"class", markup.Classes(append([]string{"token-line"}, meta.LineClassNames[i]...)...)}})
		if numbered {
			row.AppendChild(markup.Element(atom.Span, []markup.Attr{{"class", "codeLineNumber"}}, markup.Text(strconv.Itoa(meta.LineNumber(i)))))
			content := markup.Element(atom.Span, []markup.Attr{{"class", "codeLineContent"}})
			appendTokens(content, line)
			row.AppendChild(content)
		} else {
			appendTokens(row, line)
		}
		row.AppendChild(markup.Element(atom.Br, nil))
		code.AppendChild(row)
	}

	langClass := ""
	if meta.Language != "" {
		langClass = "language-" + meta.Language
	}
	return markup.Element(atom.Pre, []markup.Attr{
		{"tabindex", "0"},
		{"class", markup.Classes("prism-code", langClass, "codeBlock", "thin-scrollbar")},
		{"style", r.palettes.For(mode).Base().CSS()},
	}, code)
}

func appendTokens(parent *html.Node, line highlight.TokenLine) {
	for _, tok := range line {
		if tok.Class == "" && tok.Style.IsZero() {
			parent.AppendChild(markup.Text(tok.Text))
			continue
		}
		parent.AppendChild(markup.Element(atom.Span, []markup.Attr{
			{"class", markup.Classes("token", tok.Class)},
			{"style", tok.Style.CSS()},
		}, markup.Text(tok.Text)))
	}
}
