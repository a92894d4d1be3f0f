package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for notified-body registry lookups.
type Metrics struct {
	// Lookup outcomes by result ("ok" or a failure category)
	LookupOutcome *prometheus.CounterVec

	// Registry round-trip latency
	LookupLatency prometheus.Histogram

	// Cache hits and misses by backend
	CacheResult *prometheus.CounterVec
}

// New registers the registry metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the registry metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LookupOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "en13813_notified_body_lookups_total",
			Help: "Total notified-body registry lookups by outcome",
		}, []string{"outcome"}),

		LookupLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "en13813_notified_body_lookup_duration_seconds",
			Help:    "Duration of notified-body registry requests",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		CacheResult: f.NewCounterVec(prometheus.CounterOpts{
			Name: "en13813_notified_body_cache_total",
			Help: "Notified-body cache lookups by backend and result",
		}, []string{"backend", "result"}), // result: "hit", "miss"
	}
}

// IncrementLookup records a lookup outcome.
func (m *Metrics) IncrementLookup(outcome string) {
	if m != nil {
		m.LookupOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveLookupLatency records a registry round trip.
func (m *Metrics) ObserveLookupLatency(d time.Duration) {
	if m != nil {
		m.LookupLatency.Observe(d.Seconds())
	}
}

// IncrementCacheHit records a cache hit for backend.
func (m *Metrics) IncrementCacheHit(backend string) {
	if m != nil {
		m.CacheResult.WithLabelValues(backend, "hit").Inc()
	}
}

// IncrementCacheMiss records a cache miss for backend.
func (m *Metrics) IncrementCacheMiss(backend string) {
	if m != nil {
		m.CacheResult.WithLabelValues(backend, "miss").Inc()
	}
}
