package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess   ResultLabel = "success"
	ResultUnchanged ResultLabel = "unchanged"
	ResultFailed    ResultLabel = "failed"
	ResultSkipped   ResultLabel = "skipped"
)

// Recorder defines observability hooks. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveFetchDuration(plugin string, d time.Duration, success bool)
	IncFetchResult(plugin string, result ResultLabel)
	IncFetchRetry(plugin string)
	IncReload(result ResultLabel)
	SetIndexedDocs(n int)
	ObserveRequest(route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFetchDuration(string, time.Duration, bool) {}
func (NoopRecorder) IncFetchResult(string, ResultLabel)               {}
func (NoopRecorder) IncFetchRetry(string)                             {}
func (NoopRecorder) IncReload(ResultLabel)                            {}
func (NoopRecorder) SetIndexedDocs(int)                               {}
func (NoopRecorder) ObserveRequest(string, int, time.Duration)        {}
