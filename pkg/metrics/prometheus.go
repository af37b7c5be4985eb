// Package metrics provides Prometheus metrics for the rooting engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Matcher quality: scraped feeds periodically supply out-of-scope or
	// malformed names; misses are a data-quality signal, not a fault.
	resultsMatched   prometheus.Counter
	matcherMisses    prometheus.Counter
	duplicateResults prometheus.Counter

	// Engine activity.
	standingsComputed   prometheus.Counter
	rootingRequests     prometheus.Counter
	rootingDuration     prometheus.Histogram
	predictionsSkipped  *prometheus.CounterVec
	invariantViolations prometheus.Counter

	// HTTP performance.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.resultsMatched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "results_matched_total",
		Help:      "Raw completed results resolved to a canonical event.",
	})
	m.matcherMisses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "matcher_misses_total",
		Help:      "Raw completed results no candidate event cleared the threshold for.",
	})
	m.duplicateResults = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "duplicate_results_total",
		Help:      "Raw completed results dropped as repeats of an already-counted event.",
	})
	m.standingsComputed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "standings_computed_total",
		Help:      "Category standings derived from raw inputs.",
	})
	m.rootingRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rooting_requests_total",
		Help:      "Rooting evaluations performed for prediction sets.",
	})
	m.rootingDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "rooting_duration_seconds",
		Help:      "Wall time of one full rooting evaluation.",
		Buckets:   m.histogramBuckets,
	})
	m.predictionsSkipped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "predictions_skipped_total",
		Help:      "Predictions omitted from rooting output, by reason.",
	}, []string{"reason"})
	m.invariantViolations = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "invariant_violations_total",
		Help:      "Internal invariant violations detected during evaluation.",
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint and status code.",
	}, []string{"endpoint", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by endpoint.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})

	return m
}

// Handler exposes the custom registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// Package-level recording helpers against the global manager.

func RecordResultMatched()    { globalManager.resultsMatched.Inc() }
func RecordMatcherMiss()      { globalManager.matcherMisses.Inc() }
func RecordDuplicateResult()  { globalManager.duplicateResults.Inc() }
func RecordStandingComputed() { globalManager.standingsComputed.Inc() }
func RecordRootingRequest()   { globalManager.rootingRequests.Inc() }

// RecordRootingDuration observes one evaluation's wall time in seconds.
func RecordRootingDuration(seconds float64) { globalManager.rootingDuration.Observe(seconds) }

// RecordPredictionSkipped counts an omitted prediction by reason.
func RecordPredictionSkipped(reason string) {
	globalManager.predictionsSkipped.WithLabelValues(reason).Inc()
}

// RecordInvariantViolation counts a detected internal invariant violation.
func RecordInvariantViolation() { globalManager.invariantViolations.Inc() }

// RecordHTTPRequest counts one request by endpoint and status code.
func RecordHTTPRequest(endpoint, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, status).Inc()
}

// ObserveHTTPDuration records request latency in seconds for an endpoint.
func ObserveHTTPDuration(endpoint string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint).Observe(seconds)
}
