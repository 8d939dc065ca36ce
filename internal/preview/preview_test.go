package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doctheme/internal/metrics"
	"git.home.luguber.info/inful/doctheme/internal/site"
)

type fakeBuilder struct {
	calls atomic.Int32
	err   error
}

func (f *fakeBuilder) Build(_ context.Context, _, outDir string) (*site.Summary, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(outDir, "index.html"), []byte("<p>hi</p>"), 0o600); err != nil {
		return nil, err
	}
	return &site.Summary{Pages: 1}, nil
}

func newTestServer(t *testing.T, b SiteBuilder, reg *prom.Registry) *Server {
	t.Helper()
	s, err := New(b, Options{
		DocsDir:   t.TempDir(),
		OutputDir: filepath.Join(t.TempDir(), "out"),
		Host:      "127.0.0.1",
		Port:      0,
		Registry:  reg,
		Debounce:  20 * time.Millisecond,
	})
	require.NoError(t, err)
	return s
}

func TestNewRejectsMissingDocsDir(t *testing.T) {
	_, err := New(&fakeBuilder{}, Options{DocsDir: filepath.Join(t.TempDir(), "nope"), OutputDir: "out"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs dir not found")
}

func TestNewRequiresOutputDir(t *testing.T) {
	_, err := New(&fakeBuilder{}, Options{DocsDir: t.TempDir()})
	require.Error(t, err)
}

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path   string
		ignore bool
	}{
		{"/docs/page.md", false},
		{"/docs/.hidden.md", true},
		{"/docs/page.md~", true},
		{"/docs/.page.md.swp", true},
		{"/docs/page.swx", true},
		{"/docs/.#page.md", true},
		{"/docs/#page.md#", true},
		{"/docs/.DS_Store", true},
		{"/docs/Thumbs.db", true},
		{"/docs/sub/guide.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignore, shouldIgnoreEvent(tt.path))
		})
	}
}

func TestHealthReportsBuildState(t *testing.T) {
	s := newTestServer(t, &fakeBuilder{}, nil)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "starting", got.Status)

	s.status.record("b1", nil)
	s.status.record("b2", errors.New("page broke"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "error", got.Status)
	assert.Equal(t, "b2", got.BuildID)
	assert.Equal(t, 2, got.Builds)
	assert.True(t, got.HasGoodBuild)
	assert.Equal(t, "page broke", got.Error)
}

func TestMetricsEndpointOnlyWithRegistry(t *testing.T) {
	reg := prom.NewRegistry()
	metrics.NewPrometheusRecorder(reg).IncUnknownAdmonition()

	rec := httptest.NewRecorder()
	newTestServer(t, &fakeBuilder{}, reg).Handler().
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "doctheme_unknown_admonitions_total 1")

	rec = httptest.NewRecorder()
	newTestServer(t, &fakeBuilder{}, nil).Handler().
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRebuildRecordsFailure(t *testing.T) {
	s := newTestServer(t, &fakeBuilder{err: errors.New("boom")}, nil)
	s.rebuild(context.Background())

	h := s.Health()
	assert.Equal(t, "error", h.Status)
	assert.False(t, h.HasGoodBuild)
	assert.NotEmpty(t, h.BuildID)
}

func TestDebouncerCoalesces(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()
	for range 5 {
		d.trigger()
	}

	select {
	case <-d.ch:
	case <-time.After(time.Second):
		t.Fatal("expected a rebuild request")
	}
	select {
	case <-d.ch:
		t.Fatal("burst should produce a single request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWorkerRunsQueuedRequestOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	requests := make(chan struct{}, 1)
	release := make(chan struct{})
	started := make(chan struct{}, 4)
	var mu sync.Mutex
	count := 0

	go runWorker(ctx, requests, func(context.Context) {
		mu.Lock()
		count++
		first := count == 1
		mu.Unlock()
		started <- struct{}{}
		if first {
			<-release
		}
	})

	requests <- struct{}{}
	<-started
	for range 3 {
		select {
		case requests <- struct{}{}:
		default:
		}
	}
	close(release)
	<-started

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, count)
}

func TestRunServesAndRebuildsOnChange(t *testing.T) {
	fb := &fakeBuilder{}
	s := newTestServer(t, fb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var addr string
	select {
	case addr = <-s.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	assert.Equal(t, int32(1), fb.calls.Load())

	resp, err := http.Get("http://" + addr + "/index.html")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, os.WriteFile(filepath.Join(s.docsDir, "page.md"), []byte("# Page\n"), 0o600))
	require.Eventually(t, func() bool { return fb.calls.Load() >= 2 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestOutputDirIsNotWatched(t *testing.T) {
	docs := t.TempDir()
	s, err := New(&fakeBuilder{}, Options{DocsDir: docs, OutputDir: filepath.Join(docs, "site")})
	require.NoError(t, err)

	assert.True(t, s.inOutput(filepath.Join(docs, "site")))
	assert.True(t, s.inOutput(filepath.Join(docs, "site", "index.html")))
	assert.False(t, s.inOutput(filepath.Join(docs, "site-notes.md")))
	assert.False(t, s.inOutput(filepath.Join(docs, "index.md")))
}
