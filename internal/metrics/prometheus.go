package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for upstream symbol fetches.
const (
	OutcomeSuccess   = "success"
	OutcomeNoData    = "no_data"
	OutcomeQuota     = "quota_exceeded"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed"
)

// Recorder owns its own registry so several instances can coexist (tests build one per app).
type Recorder struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	symbolFetches *prometheus.CounterVec
	fetchLatency  prometheus.Histogram
}

// New creates a Recorder with process and Go runtime collectors registered.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock_monitor_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stock_monitor_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		symbolFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock_monitor_symbol_fetches_total",
				Help: "Market-data fetches by outcome",
			},
			[]string{"outcome"},
		),
		fetchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stock_monitor_fetch_batch_duration_seconds",
				Help:    "Duration of one concurrent market-data fetch batch in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpLatency,
		r.symbolFetches,
		r.fetchLatency,
	)
	return r
}

// RecordRequest records one served HTTP request.
func (r *Recorder) RecordRequest(method, route, status string, seconds float64) {
	r.httpRequests.WithLabelValues(method, route, status).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(seconds)
}

// RecordSymbolFetch records the outcome of one symbol's upstream fetch.
func (r *Recorder) RecordSymbolFetch(outcome string) {
	r.symbolFetches.WithLabelValues(outcome).Inc()
}

// RecordFetchBatch records the wall time of one fan-out batch.
func (r *Recorder) RecordFetchBatch(seconds float64) {
	r.fetchLatency.Observe(seconds)
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
