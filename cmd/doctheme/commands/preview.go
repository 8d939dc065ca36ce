package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/doctheme/internal/preview"
)

// PreviewCmd serves a docs directory and rebuilds it on change.
type PreviewCmd struct {
	DocsDir string `short:"d" name:"docs-dir" default:"./docs" help:"Path to local docs directory to watch."`
	Output  string `short:"o" name:"output" help:"Output directory (defaults to output.directory)."`
	Host    string `name:"host" help:"Listen host (defaults to preview.host)."`
	Port    int    `name:"port" help:"Listen port (defaults to preview.port)."`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	host, port, outDir := cfg.Preview.Host, cfg.Preview.Port, cfg.Output.Directory
	if p.Host != "" {
		host = p.Host
	}
	if p.Port != 0 {
		port = p.Port
	}
	if p.Output != "" {
		outDir = p.Output
	}

	reg, rec := newRegistry(cfg.Preview.Metrics)
	builder, store, err := newBuilder(g, cfg, rec)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	srv, err := preview.New(builder, preview.Options{
		DocsDir:   p.DocsDir,
		OutputDir: outDir,
		Host:      host,
		Port:      port,
		Registry:  reg,
		Logger:    g.Logger,
	})
	if err != nil {
		return err
	}
	go func() {
		select {
		case addr := <-srv.Ready():
			fmt.Printf("Preview: http://%s/\n", addr)
		case <-sigctx.Done():
		}
	}()
	return srv.Run(sigctx)
}
