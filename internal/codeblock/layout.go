package codeblock

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/doctheme/internal/highlight"
	"git.home.luguber.info/inful/doctheme/internal/markup"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// Layout names the terminal state of one compose pass.
type Layout string

const (
	LayoutComposed Layout = "composed"
	LayoutFallback Layout = "fallback"
)

// Composer assembles header, content and controls into one block.
type Composer struct {
	highlighter *highlight.Highlighter
	renderer    *Renderer
	labels      Labels
}

// NewComposer wires a composer from its collaborators.
func NewComposer(h *highlight.Highlighter, labels Labels) *Composer {
	return &Composer{
		highlighter: h,
		renderer:    NewRenderer(h.Palettes()),
		labels:      labels,
	}
}

// Labels returns the language label table.
func (c *Composer) Labels() Labels { return c.labels }

// ComposeFrom probes for a render context. A missing context selects the
// baseline layout for raw; any other probe error is returned unchanged and
// nothing is rendered. A nil probe counts as a missing context.
func (c *Composer) ComposeFrom(probe func() (*RenderContext, error), raw string) (*html.Node, Layout, error) {
	if probe == nil {
		return Baseline(raw), LayoutFallback, nil
	}
	ctx, err := probe()
	if err != nil {
		if theme.IsContextUnavailable(err) {
			return Baseline(raw), LayoutFallback, nil
		}
		return nil, "", err
	}
	if ctx == nil {
		return Baseline(raw), LayoutFallback, nil
	}
	return c.Compose(ctx, raw), LayoutComposed, nil
}

// Compose builds the themed block for ctx, or the baseline for raw when ctx is nil.
func (c *Composer) Compose(ctx *RenderContext, raw string) *html.Node {
	if ctx == nil {
		return Baseline(raw)
	}
	meta := ctx.metadata
	mode := ctx.mode
	tokens := c.highlighter.Tokenize(meta.Code, meta.Language, mode)
	label := c.labels.Label(meta.Language)

	langClass := ""
	if meta.Language != "" {
		langClass = "language-" + meta.Language
	}
	container := markup.Element(atom.Div, []markup.Attr{
		{"class", markup.Classes("theme-code-block", "codeBlockContainer", langClass, meta.ClassName)},
		{"data-color-mode", mode.String()},
		{"style", c.highlighter.Palette(mode).CSSVariables()},
	})

	if meta.Title != "" || label != "" {
		container.AppendChild(header(meta.Title, label))
	}

	container.AppendChild(markup.Element(atom.Div, []markup.Attr{{"class", "codeBlockContent"}},
		c.renderer.Render(meta, mode, tokens),
		buttons(),
	))
	return container
}

func header(title, label string) *html.Node {
	var titleRegion *html.Node
	if title != "" {
		titleRegion = markup.Element(atom.Div, []markup.Attr{{"class", "codeBlockTitle"}}, markup.Text(title))
	} else {
		titleRegion = markup.Element(atom.Div, []markup.Attr{{"class", "codeBlockTitleSpacer"}})
	}
	var badge *html.Node
	if label != "" {
		badge = markup.Element(atom.Span, []markup.Attr{{"class", "codeBlockLanguage"}}, markup.Text(label))
	}
	return markup.Element(atom.Div, []markup.Attr{{"class", "codeBlockHeader"}}, titleRegion, badge)
}

func buttons() *html.Node {
	return markup.Element(atom.Div, []markup.Attr{{"class", "buttonGroup"}},
		markup.Element(atom.Button, []markup.Attr{
			{"type", "button"},
			{"aria-label", "Copy code to clipboard"},
			{"title", "Copy"},
			{"class", "clean-btn copyButton"},
		}, markup.Text("Copy")),
	)
}

// Baseline is the unthemed layout used when no render context exists: plain
// escaped code with no header, palette or controls.
func Baseline(raw string) *html.Node {
	return markup.Element(atom.Pre, nil, markup.Element(atom.Code, nil, markup.Text(raw)))
}
