package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the declaration workflow.
type Metrics struct {
	// Transition attempts by source, target and outcome
	Transitions *prometheus.CounterVec

	// Findings per rule and severity
	Findings *prometheus.CounterVec

	// Evidence gathering latency by source
	EvidenceLatency *prometheus.HistogramVec

	DeclarationsCreated prometheus.Counter
	RevisionsCreated    prometheus.Counter
}

// New registers the workflow metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the workflow metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "en13813_declaration_transitions_total",
			Help: "Declaration transition attempts by from, to and outcome",
		}, []string{"from", "to", "outcome"}), // outcome: "ok", "invalid", "blocked", "conflict", "error"

		Findings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "en13813_declaration_findings_total",
			Help: "Validation findings by rule and severity",
		}, []string{"rule", "severity"}),

		EvidenceLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "en13813_declaration_evidence_duration_seconds",
			Help:    "Duration of evidence gathering by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}), // source: "recipe", "notified_body"

		DeclarationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "en13813_declarations_created_total",
			Help: "Total declarations created",
		}),

		RevisionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "en13813_declaration_revisions_total",
			Help: "Total revisions created",
		}),
	}
}

// IncrementTransition records a transition attempt.
func (m *Metrics) IncrementTransition(from, to, outcome string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to, outcome).Inc()
	}
}

// IncrementFinding records one validation finding.
func (m *Metrics) IncrementFinding(rule, severity string) {
	if m != nil {
		m.Findings.WithLabelValues(rule, severity).Inc()
	}
}

// ObserveEvidenceLatency records the duration of fetching evidence from a source.
func (m *Metrics) ObserveEvidenceLatency(source string, d time.Duration) {
	if m != nil {
		m.EvidenceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementDeclarationsCreated() {
	if m != nil {
		m.DeclarationsCreated.Inc()
	}
}

func (m *Metrics) IncrementRevisionsCreated() {
	if m != nil {
		m.RevisionsCreated.Inc()
	}
}
