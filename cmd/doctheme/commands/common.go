// Package commands implements the doctheme CLI commands.
package commands

import (
	"io"
	"log/slog"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doctheme/internal/cache"
	"git.home.luguber.info/inful/doctheme/internal/config"
	"git.home.luguber.info/inful/doctheme/internal/foundation/errors"
	"git.home.luguber.info/inful/doctheme/internal/logfields"
	"git.home.luguber.info/inful/doctheme/internal/metrics"
	"git.home.luguber.info/inful/doctheme/internal/observability"
	"git.home.luguber.info/inful/doctheme/internal/site"
)

// DefaultConfigPath is used when -c is not given. Unlike an explicit path it
// may be absent, in which case built-in defaults apply.
const DefaultConfigPath = "doctheme.yaml"

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"doctheme.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Render  RenderCmd  `cmd:"" help:"Render a docs directory into themed HTML pages"`
	Show    ShowCmd    `cmd:"" help:"Print the code blocks of a Markdown file to the terminal"`
	Preview PreviewCmd `cmd:"" help:"Serve a docs directory and rebuild on change"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// AfterApply runs after flag parsing; it installs a provisional logger until
// the configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	g.Logger = newLogger(os.Stderr, config.LoggingConfig{}, c.Verbose)
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig reads the configured file and reinstalls the logger from its
// logging section. -v always wins over the configured level.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		if root.Config != DefaultConfigPath || !errors.HasCategory(err, errors.CategoryNotFound) {
			return nil, err
		}
		cfg = config.Default()
	}
	g.Logger = newLogger(os.Stderr, cfg.Logging, root.Verbose)
	slog.SetDefault(g.Logger)
	if err != nil {
		g.Logger.Debug("No configuration file; using defaults", logfields.Path(root.Config))
	}
	return cfg, nil
}

func newLogger(w io.Writer, lc config.LoggingConfig, verbose bool) *slog.Logger {
	level := lc.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if lc.Format == config.LogFormatJSON {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(observability.NewContextHandler(h))
}

// openStore opens the configured render cache, or a no-op store when caching
// is disabled.
func openStore(cfg *config.Config) (cache.Store, error) {
	if cfg.Cache.Path == "" {
		return cache.NoopStore{}, nil
	}
	store, err := cache.NewSQLiteStore(cfg.Cache.Path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryCache, "failed to open render cache").
			WithContext("path", cfg.Cache.Path).Build()
	}
	return store, nil
}

// newBuilder wires a site builder with the configured cache. The caller owns
// the returned store.
func newBuilder(g *Global, cfg *config.Config, rec metrics.Recorder) (*site.Builder, cache.Store, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	b, err := site.NewBuilder(cfg,
		site.WithCache(store),
		site.WithRecorder(rec),
		site.WithLogger(g.Logger))
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return b, store, nil
}

// newRegistry returns a metrics registry and recorder when enabled.
func newRegistry(enabled bool) (*prom.Registry, metrics.Recorder) {
	if !enabled {
		return nil, metrics.NoopRecorder{}
	}
	reg := prom.NewRegistry()
	return reg, metrics.NewPrometheusRecorder(reg)
}
