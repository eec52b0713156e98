// Package metrics provides the observability hooks for remote content
// fetches, site reloads and preview server requests.
//
// Components hold a Recorder and default to NoopRecorder, so nothing needs a
// nil check. The preview server swaps in a PrometheusRecorder and exposes its
// registry on /metrics:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	fetcher := remotecontent.NewFetcher(opts).WithRecorder(recorder)
package metrics
