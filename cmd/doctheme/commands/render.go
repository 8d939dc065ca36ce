package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/doctheme/internal/codeblock"
	"git.home.luguber.info/inful/doctheme/internal/config"
	"git.home.luguber.info/inful/doctheme/internal/observability"
	"git.home.luguber.info/inful/doctheme/internal/site"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	DocsDir string `arg:"" name:"docs-dir" default:"./docs" help:"Markdown source directory."`
	Output  string `short:"o" name:"output" help:"Output directory (defaults to output.directory)."`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	summary, err := RunRender(ctx, g, cfg, r.DocsDir, r.resolveOutput(cfg))
	if err != nil {
		return err
	}
	printSummary(os.Stdout, summary)
	return nil
}

func (r *RenderCmd) resolveOutput(cfg *config.Config) string {
	if r.Output != "" {
		return r.Output
	}
	return cfg.Output.Directory
}

// RunRender builds docsDir into outDir once.
func RunRender(ctx context.Context, g *Global, cfg *config.Config, docsDir, outDir string) (*site.Summary, error) {
	_, rec := newRegistry(false)
	builder, store, err := newBuilder(g, cfg, rec)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()
	return builder.Build(observability.WithBuildID(ctx, uuid.NewString()), docsDir, outDir)
}

func printSummary(w io.Writer, s *site.Summary) {
	_, _ = fmt.Fprintf(w, "Rendered %d page(s) (%d from cache) in %s\n", s.Pages, s.Cached, s.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(w, "Code blocks: %d composed, %d fallback\n",
		s.Layouts[codeblock.LayoutComposed], s.Layouts[codeblock.LayoutFallback])
}
