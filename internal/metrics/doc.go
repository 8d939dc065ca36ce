// Package metrics records render pipeline metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics stay optional:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	builder := site.NewBuilder(cfg, site.WithRecorder(recorder))
//
// The preview server exposes the registry through HTTPHandler.
package metrics
