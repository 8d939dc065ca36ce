package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "doctheme"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	codeBlocks        *prom.CounterVec
	modeResolutions   *prom.CounterVec
	unknownAdmonition prom.Counter
	pageDuration      prom.Histogram
	cacheResults      *prom.CounterVec
	buildDuration     prom.Histogram
	buildOutcome      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.codeBlocks = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "code_blocks_total",
			Help:      "Rendered code blocks by layout",
		}, []string{"layout"})
		pr.modeResolutions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "mode_resolutions_total",
			Help:      "Page color mode resolutions by deciding source",
		}, []string{"source"})
		pr.unknownAdmonition = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_admonitions_total",
			Help:      "Admonitions with an unrecognized kind",
		})
		pr.pageDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "page_render_duration_seconds",
			Help:      "Duration of single page renders",
			Buckets:   prom.DefBuckets,
		})
		pr.cacheResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "render_cache_results_total",
			Help:      "Render cache lookups by result",
		}, []string{"result"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Site builds by final status",
		}, []string{"outcome"})
		reg.MustRegister(pr.codeBlocks, pr.modeResolutions, pr.unknownAdmonition, pr.pageDuration, pr.cacheResults, pr.buildDuration, pr.buildOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) IncCodeBlock(layout string) {
	if p == nil || p.codeBlocks == nil {
		return
	}
	p.codeBlocks.WithLabelValues(layout).Inc()
}

func (p *PrometheusRecorder) IncModeResolution(source string) {
	if p == nil || p.modeResolutions == nil {
		return
	}
	p.modeResolutions.WithLabelValues(source).Inc()
}

func (p *PrometheusRecorder) IncUnknownAdmonition() {
	if p == nil || p.unknownAdmonition == nil {
		return
	}
	p.unknownAdmonition.Inc()
}

func (p *PrometheusRecorder) ObservePageDuration(d time.Duration) {
	if p == nil || p.pageDuration == nil {
		return
	}
	p.pageDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCacheResult(hit bool) {
	if p == nil || p.cacheResults == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheResults.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}
