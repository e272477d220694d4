// Package metrics records docsite observability data.
//
// Components receive a Recorder and default to NoopRecorder, so metrics can be
// enabled without nil checks at call sites:
//
//	checker := &linkcheck.Checker{Recorder: metrics.NoopRecorder{}}
//
// When a metrics listen address is configured the CLI swaps in a
// PrometheusRecorder and serves its registry through HTTPHandler.
package metrics
