// Package metrics exposes Prometheus instrumentation for device lookups.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "imeiinfo"

// Lookup kinds.
const (
	KindIMEI = "imei"
	KindTAC  = "tac"
)

// Lookup outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeCacheHit     = "cache_hit"
	OutcomeError        = "error"
)

// Metrics holds the collectors used by the lookup service and the upstream client.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	lookups         *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	cacheErrors     prometheus.Counter
}

// New registers all collectors on a fresh registry, together with the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Device lookups by identifier kind and outcome.",
		}, []string{"kind", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of IMEI.info requests by HTTP status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		cacheErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_errors_total",
			Help:      "Failed cache reads and writes.",
		}),
	}

	m.registry.MustRegister(
		m.lookups,
		m.upstreamLatency,
		m.cacheErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Gatherer returns the registry backing these metrics.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// ObserveLookup counts one finished lookup.
func (m *Metrics) ObserveLookup(kind, outcome string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(kind, outcome).Inc()
}

// ObserveUpstream records the latency of one upstream request. status is the
// HTTP status class ("2xx", "4xx", ...) or "transport_error".
func (m *Metrics) ObserveUpstream(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.upstreamLatency.WithLabelValues(status).Observe(elapsed.Seconds())
}

// IncCacheError counts a failed cache operation.
func (m *Metrics) IncCacheError() {
	if m == nil {
		return
	}
	m.cacheErrors.Inc()
}
