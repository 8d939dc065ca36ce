package markdown

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/doctheme/internal/admonition"
	"git.home.luguber.info/inful/doctheme/internal/codeblock"
	"git.home.luguber.info/inful/doctheme/internal/logfields"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

// Extension installs the theme into a goldmark instance.
type Extension struct {
	Composer    *codeblock.Composer
	Admonitions *admonition.Renderer
}

func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		containerParserOption(),
		parser.WithASTTransformers(util.Prioritized(&fenceTransformer{}, 100)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&themeRenderer{composer: e.Composer, admonitions: e.Admonitions}, 100),
	))
}

// Converter turns Markdown bodies into themed HTML fragments.
// It is safe for concurrent use.
type Converter struct {
	md         goldmark.Markdown
	attributes theme.AttributeSource
	logger     *slog.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithDocumentAttributes sets the persisted document attributes consulted
// when a page has no mode provider.
func WithDocumentAttributes(a theme.AttributeSource) ConverterOption {
	return func(c *Converter) { c.attributes = a }
}

// WithConverterLogger sets the logger.
func WithConverterLogger(l *slog.Logger) ConverterOption {
	return func(c *Converter) { c.logger = l }
}

// NewConverter returns a converter with GFM and the theme extension enabled.
func NewConverter(composer *codeblock.Composer, admonitions *admonition.Renderer, opts ...ConverterOption) *Converter {
	c := &Converter{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			&Extension{Composer: composer, Admonitions: admonitions},
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return c
}

// Option configures one Convert call.
type Option func(parser.Context)

// WithModeProvider sets the page-level mode provider.
func WithModeProvider(p theme.Provider) Option {
	return func(pc parser.Context) { pc.Set(modeProviderKey, p) }
}

// Convert renders source to w. The page mode is resolved once before any
// block is rendered; a resolution error other than a missing provider stops
// the conversion before anything is written.
func (c *Converter) Convert(source []byte, w io.Writer, opts ...Option) (*Result, error) {
	pc := parser.NewContext()
	if c.attributes != nil {
		pc.Set(attributesKey, c.attributes)
	}
	for _, opt := range opts {
		opt(pc)
	}

	doc := c.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
	res, _ := pc.Get(resultKey).(*Result)
	if res == nil {
		return nil, fmt.Errorf("markdown: theme transformer did not run")
	}
	if res.err != nil {
		return nil, fmt.Errorf("resolve color mode: %w", res.err)
	}
	c.logger.Debug("Resolved page color mode",
		logfields.Mode(res.Mode.String()),
		logfields.ModeSource(string(res.ModeSource)))

	if err := c.md.Renderer().Render(w, source, doc); err != nil {
		return nil, err
	}
	return res, nil
}
