package admonition

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/doctheme/internal/logfields"
	"git.home.luguber.info/inful/doctheme/internal/markup"
)

// Props are the inputs of one admonition.
type Props struct {
	Kind  string
	Title string // replaces the translated label when set
}

// Renderer draws admonitions. It is safe for concurrent use.
type Renderer struct {
	labels *Labels
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for unknown-kind warnings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer returns a renderer using labels (English when nil).
func NewRenderer(labels *Labels, opts ...Option) *Renderer {
	if labels == nil {
		labels = DefaultLabels()
	}
	r := &Renderer{labels: labels, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the config for kind. Unknown kinds are logged and resolve to info.
func (r *Renderer) Resolve(kind string) Config {
	cfg, ok := Lookup(kind)
	if !ok {
		r.logger.Warn("Unknown admonition type, defaulting to "+Default, logfields.Admonition(kind))
	}
	return cfg
}

// Render returns the admonition tree with children as its content.
func (r *Renderer) Render(props Props, children ...*html.Node) *html.Node {
	cfg := r.Resolve(props.Kind)
	title := props.Title
	if title == "" {
		title = r.labels.Label(cfg)
	}

	return markup.Element(atom.Div, []markup.Attr{
		{"class", markup.Classes(
			"theme-admonition",
			"theme-admonition-"+cfg.Kind,
			"alert",
			"alert--"+cfg.ClassName,
			"admonition",
		)},
	},
		markup.Element(atom.Div, []markup.Attr{{"class", "admonitionHeading"}},
			markup.Element(atom.Span, []markup.Attr{{"class", "admonitionIcon"}}, icon(cfg.Icon)),
			markup.Text(title),
		),
		markup.Element(atom.Div, []markup.Attr{{"class", "admonitionContent"}}, children...),
	)
}

const contentMarker = "admonition-content"

// Frame returns the markup before and after the content, for renderers that
// stream children between the two halves.
func (r *Renderer) Frame(props Props) (open, closing string, err error) {
	out, err := markup.Render(r.Render(props, markup.Comment(contentMarker)))
	if err != nil {
		return "", "", err
	}
	open, closing, ok := strings.Cut(out, "<!--"+contentMarker+"-->")
	if !ok {
		return "", "", fmt.Errorf("admonition: content marker missing from %q", out)
	}
	return open, closing, nil
}

func icon(i Icon) *html.Node {
	return markup.Foreign("svg", []markup.Attr{{"viewBox", i.ViewBox}},
		markup.Foreign("path", []markup.Attr{{"fill-rule", i.FillRule}, {"d", i.Path}}),
	)
}
