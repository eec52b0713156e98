package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fetchDuration   *prom.HistogramVec
	fetchResults    *prom.CounterVec
	fetchRetries    *prom.CounterVec
	reloads         *prom.CounterVec
	indexedDocs     prom.Gauge
	requestDuration *prom.HistogramVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fetchDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_fetch_duration_seconds",
			Help:      "Duration of remote content fetches per plugin",
			Buckets:   prom.DefBuckets,
		}, []string{"plugin", "result"}),
		fetchResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "remote_documents_total",
			Help:      "Fetched remote documents by outcome",
		}, []string{"plugin", "result"}),
		fetchRetries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "remote_fetch_retries_total",
			Help:      "Retried remote document downloads (transient failures)",
		}, []string{"plugin"}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "site_reloads_total",
			Help:      "Site reload attempts by outcome",
		}, []string{"result"}),
		indexedDocs: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_docs",
			Help:      "Documents in the currently served docs index",
		}),
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Preview server request duration",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "status"}),
	}
	reg.MustRegister(pr.fetchDuration, pr.fetchResults, pr.fetchRetries, pr.reloads, pr.indexedDocs, pr.requestDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveFetchDuration(plugin string, d time.Duration, success bool) {
	if p == nil {
		return
	}
	res := ResultFailed
	if success {
		res = ResultSuccess
	}
	p.fetchDuration.WithLabelValues(plugin, string(res)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFetchResult(plugin string, result ResultLabel) {
	if p == nil {
		return
	}
	p.fetchResults.WithLabelValues(plugin, string(result)).Inc()
}

func (p *PrometheusRecorder) IncFetchRetry(plugin string) {
	if p == nil {
		return
	}
	p.fetchRetries.WithLabelValues(plugin).Inc()
}

func (p *PrometheusRecorder) IncReload(result ResultLabel) {
	if p == nil {
		return
	}
	p.reloads.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetIndexedDocs(n int) {
	if p == nil {
		return
	}
	p.indexedDocs.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveRequest(route string, status int, d time.Duration) {
	if p == nil {
		return
	}
	p.requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

// HTTPHandler serves the metrics gathered by reg in the OpenMetrics format
// when the scraper asks for it. A nil reg serves the global registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	var g prom.Gatherer = prom.DefaultGatherer
	if reg != nil {
		g = reg
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
