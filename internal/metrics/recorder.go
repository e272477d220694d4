package metrics

import "time"

// ResultLabel enumerates operation result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for validation, link checks and emits.
type Recorder interface {
	SetValidationIssues(n int)
	AddLinksChecked(n int)
	AddLinksBroken(n int)
	ObserveLinkCheckDuration(d time.Duration)
	IncEmit(format string, result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) SetValidationIssues(int)                {}
func (NoopRecorder) AddLinksChecked(int)                    {}
func (NoopRecorder) AddLinksBroken(int)                     {}
func (NoopRecorder) ObserveLinkCheckDuration(time.Duration) {}
func (NoopRecorder) IncEmit(string, ResultLabel)            {}

// Result maps an error to its ResultLabel.
func Result(err error) ResultLabel {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}
