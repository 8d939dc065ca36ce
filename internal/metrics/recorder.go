package metrics

import "time"

// BuildOutcomeLabel enumerates site build results.
type BuildOutcomeLabel string

const (
	BuildSuccess BuildOutcomeLabel = "success"
	BuildFailed  BuildOutcomeLabel = "failed"
)

// Recorder defines observability hooks for the render pipeline. Implementations
// may forward to Prometheus or any other backend.
type Recorder interface {
	IncCodeBlock(layout string)      // layout: composed|fallback
	IncModeResolution(source string) // source: provider|attribute|default
	IncUnknownAdmonition()
	ObservePageDuration(d time.Duration)
	IncCacheResult(hit bool)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncCodeBlock(string)                {}
func (NoopRecorder) IncModeResolution(string)           {}
func (NoopRecorder) IncUnknownAdmonition()              {}
func (NoopRecorder) ObservePageDuration(time.Duration)  {}
func (NoopRecorder) IncCacheResult(bool)                {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)  {}
