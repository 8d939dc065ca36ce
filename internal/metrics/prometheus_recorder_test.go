package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncCodeBlock("composed")
	pr.IncCodeBlock("composed")
	pr.IncCodeBlock("fallback")
	pr.IncModeResolution("attribute")
	pr.IncUnknownAdmonition()
	pr.ObservePageDuration(20 * time.Millisecond)
	pr.IncCacheResult(true)
	pr.IncCacheResult(false)
	pr.IncCacheResult(false)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildSuccess)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.codeBlocks.WithLabelValues("composed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.codeBlocks.WithLabelValues("fallback")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.modeResolutions.WithLabelValues("attribute")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.unknownAdmonition), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.cacheResults.WithLabelValues("miss")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 7)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.IncCodeBlock("composed")
	pr.IncCacheResult(true)
	pr.ObservePageDuration(time.Second)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncCodeBlock("composed")

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `doctheme_code_blocks_total{layout="composed"} 1`)
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
