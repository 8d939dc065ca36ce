// Package site renders Markdown pages into themed HTML documents.
package site

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/doctheme/internal/admonition"
	"git.home.luguber.info/inful/doctheme/internal/cache"
	"git.home.luguber.info/inful/doctheme/internal/codeblock"
	"git.home.luguber.info/inful/doctheme/internal/config"
	"git.home.luguber.info/inful/doctheme/internal/foundation/errors"
	"git.home.luguber.info/inful/doctheme/internal/frontmatter"
	"git.home.luguber.info/inful/doctheme/internal/highlight"
	"git.home.luguber.info/inful/doctheme/internal/logfields"
	"git.home.luguber.info/inful/doctheme/internal/markdown"
	"git.home.luguber.info/inful/doctheme/internal/metrics"
	"git.home.luguber.info/inful/doctheme/internal/observability"
	"git.home.luguber.info/inful/doctheme/internal/theme"
	"git.home.luguber.info/inful/doctheme/internal/version"
)

// Builder renders pages and whole docs trees. It is safe for concurrent use
// when its cache store is.
type Builder struct {
	converter  *markdown.Converter
	layout     *layout
	attributes theme.StaticAttributes
	locale     string
	renderKey  string
	clean      bool

	store    cache.Store
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithCache sets the render cache.
func WithCache(store cache.Store) Option {
	return func(b *Builder) { b.store = store }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder wires the render pipeline from cfg.
func NewBuilder(cfg *config.Config, opts ...Option) (*Builder, error) {
	b := &Builder{
		store:    cache.NoopStore{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		locale:   cfg.Theme.Locale,
		clean:    cfg.Output.Clean,
	}
	for _, opt := range opts {
		opt(b)
	}

	palettes, err := highlight.NewPalettes(cfg.Highlight.LightStyle, cfg.Highlight.DarkStyle)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryHighlight, "invalid highlight styles").Build()
	}
	labels, err := admonition.NewLabels(cfg.Theme.Locale, cfg.Theme.AdmonitionLabels)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid admonition labels").Build()
	}
	l, err := loadLayout(cfg.Theme.Layout)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTheme, "failed to load layout").
			WithContext("path", cfg.Theme.Layout).Build()
	}
	b.layout = l

	b.attributes = theme.StaticAttributes{}
	for k, v := range l.attributes {
		b.attributes[k] = v
	}
	if cfg.Theme.DataTheme != "" {
		b.attributes[theme.DataThemeAttribute] = cfg.Theme.DataTheme
	}

	composer := codeblock.NewComposer(highlight.New(palettes), codeblock.NewLabels(cfg.Languages))
	b.converter = markdown.NewConverter(composer,
		admonition.NewRenderer(labels, admonition.WithLogger(b.logger)),
		markdown.WithDocumentAttributes(b.attributes),
		markdown.WithConverterLogger(b.logger),
	)
	b.renderKey = cfg.RenderKey() + ":" + l.digest + ":" + version.Version
	return b, nil
}

// Page is one rendered document.
type Page struct {
	Path   string
	Title  string
	Mode   theme.Mode
	HTML   []byte
	Cached bool
	Result *markdown.Result // nil for cache hits
}

// RenderPage renders the Markdown file at path into a complete HTML document.
func (b *Builder) RenderPage(ctx context.Context, path string) (*Page, error) {
	start := time.Now()
	ctx = observability.WithPage(ctx, path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("page", path).Build()
	}
	page, err := b.Render(ctx, path, content)
	if err != nil {
		return nil, err
	}
	b.recorder.ObservePageDuration(time.Since(start))
	b.logger.DebugContext(ctx, "Rendered page",
		logfields.Mode(page.Mode.String()),
		logfields.Cache(cacheResult(page.Cached)),
		logfields.Duration(time.Since(start)))
	return page, nil
}

// Render is RenderPage for in-memory content; path is used for titles and errors.
func (b *Builder) Render(ctx context.Context, path string, content []byte) (*Page, error) {
	ctx = observability.WithPage(ctx, path)
	doc, err := frontmatter.Parse(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "invalid frontmatter").
			WithContext("page", path).Build()
	}

	provider := doc.ModeProvider()
	mode, source, err := theme.Resolver{Provider: provider, Attributes: b.attributes}.ResolveWithSource()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTheme, "failed to resolve color mode").
			WithContext("page", path).Build()
	}
	b.recorder.IncModeResolution(string(source))

	title := doc.Title()
	if title == "" {
		title = titleFromPath(path)
	}

	fingerprint := mdfp.CalculateFingerprintFromParts(string(doc.Frontmatter), string(doc.Body))
	key := cache.Key(fingerprint, mode.String(), b.renderKey)
	if cached, ok, err := b.store.Get(ctx, key); err != nil {
		b.logger.WarnContext(ctx, "Render cache lookup failed", logfields.Error(err))
	} else if ok {
		b.recorder.IncCacheResult(true)
		return &Page{Path: path, Title: title, Mode: mode, HTML: cached, Cached: true}, nil
	}
	b.recorder.IncCacheResult(false)

	var body bytes.Buffer
	res, err := b.converter.Convert(doc.Body, &body, markdown.WithModeProvider(provider))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to render page").
			WithContext("page", path).Build()
	}
	for kind, n := range res.Layouts {
		for i := 0; i < n; i++ {
			b.recorder.IncCodeBlock(string(kind))
		}
	}
	for range res.UnknownAdmonitions {
		b.recorder.IncUnknownAdmonition()
	}

	html, err := b.layout.execute(PageData{
		Title:   title,
		Lang:    b.locale,
		Mode:    res.Mode,
		Version: version.Version,
		Content: template.HTML(body.String()), //nolint:gosec // converter output is trusted markup
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTheme, "failed to execute layout").
			WithContext("page", path).Build()
	}

	if err := b.store.Put(ctx, key, fingerprint, html); err != nil {
		b.logger.WarnContext(ctx, "Render cache store failed", logfields.Error(err))
	}
	return &Page{Path: path, Title: title, Mode: res.Mode, HTML: html, Result: res}, nil
}

func cacheResult(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func titleFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
