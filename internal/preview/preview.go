// Package preview serves a rendered docs tree and rebuilds it on change.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doctheme/internal/foundation/errors"
	"git.home.luguber.info/inful/doctheme/internal/logfields"
	"git.home.luguber.info/inful/doctheme/internal/metrics"
	"git.home.luguber.info/inful/doctheme/internal/observability"
	"git.home.luguber.info/inful/doctheme/internal/site"
)

const (
	defaultDebounce = 300 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// SiteBuilder renders a docs tree into an output directory.
type SiteBuilder interface {
	Build(ctx context.Context, srcDir, outDir string) (*site.Summary, error)
}

// Options configures a Server.
type Options struct {
	DocsDir   string
	OutputDir string
	Host      string
	Port      int
	// Registry enables /metrics when non-nil.
	Registry *prom.Registry
	Logger   *slog.Logger
	Debounce time.Duration
}

// Server is a local preview server.
type Server struct {
	builder   SiteBuilder
	docsDir   string
	outputDir string
	addr      string
	registry  *prom.Registry
	logger    *slog.Logger
	debounce  time.Duration
	status    *buildStatus

	// ready receives the bound address once the listener is up.
	ready chan string
}

// New validates opts and returns a server. Nothing is built or bound until Run.
func New(builder SiteBuilder, opts Options) (*Server, error) {
	docsDir, err := resolveDocsDir(opts.DocsDir)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		return nil, errors.ValidationError("preview requires an output directory").Build()
	}
	outDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve output dir").Build()
	}
	s := &Server{
		builder:   builder,
		docsDir:   docsDir,
		outputDir: outDir,
		addr:      net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		registry:  opts.Registry,
		logger:    opts.Logger,
		debounce:  opts.Debounce,
		status:    &buildStatus{},
		ready:     make(chan string, 1),
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.debounce <= 0 {
		s.debounce = defaultDebounce
	}
	return s, nil
}

// resolveDocsDir validates and resolves the absolute path of the docs directory.
func resolveDocsDir(docsDir string) (string, error) {
	if docsDir == "" {
		docsDir = "./docs"
	}
	abs, err := filepath.Abs(docsDir)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "resolve docs dir").Build()
	}
	if st, statErr := os.Stat(abs); statErr != nil || !st.IsDir() {
		return "", errors.NotFoundError(fmt.Sprintf("docs dir not found or not a directory: %s", abs)).
			WithContext("path", abs).Build()
	}
	return abs, nil
}

// Ready yields the listening address once Run has bound it.
func (s *Server) Ready() <-chan string { return s.ready }

// Health reports the latest build state.
func (s *Server) Health() Health { return s.status.health() }

// Run builds once, serves the output directory and rebuilds on docs changes
// until ctx is cancelled. A failed build does not stop the server.
func (s *Server) Run(ctx context.Context) error {
	s.rebuild(ctx)

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to start preview listener").
			WithContext("addr", s.addr).Build()
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()
	s.logger.Info("Preview server listening", "addr", ln.Addr().String(), logfields.Path(s.docsDir))
	s.ready <- ln.Addr().String()

	watcher, err := s.setupWatcher()
	if err != nil {
		_ = srv.Close()
		return errors.WrapError(err, errors.CategoryRuntime, "fsnotify").Build()
	}
	defer func() { _ = watcher.Close() }()

	deb := newDebouncer(s.debounce)
	defer deb.stop()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go runWorker(loopCtx, deb.ch, s.rebuild)
	go s.watchLoop(loopCtx, watcher, deb.trigger)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		cancel()
		return errors.WrapError(err, errors.CategoryRuntime, "preview server failed").Build()
	}

	s.logger.Info("Shutting down preview server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	return nil
}

// Handler serves the output tree, /healthz and, when a registry is set, /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	}
	mux.Handle("/", http.FileServer(http.Dir(s.outputDir)))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h := s.status.health()
	w.Header().Set("Content-Type", "application/json")
	if h.Status == "error" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(h); err != nil {
		s.logger.Warn("Failed to encode health", logfields.Error(err))
	}
}

func (s *Server) rebuild(ctx context.Context) {
	id := uuid.NewString()
	ctx = observability.WithBuildID(ctx, id)
	s.logger.InfoContext(ctx, "Rebuilding site")
	summary, err := s.builder.Build(ctx, s.docsDir, s.outputDir)
	s.status.record(id, err)
	if err != nil {
		s.logger.WarnContext(ctx, "Rebuild failed", logfields.Error(err))
		return
	}
	s.logger.InfoContext(ctx, "Rebuild complete", logfields.Pages(summary.Pages), logfields.Duration(summary.Duration))
}
