package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomePassed  = "passed"
	OutcomeFailed  = "failed"
	OutcomeInvalid = "invalid"
)

// Metrics counts conformity assessments.
type Metrics struct {
	Assessments *prometheus.CounterVec
	BatchSize   prometheus.Histogram
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Assessments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "en13813_conformity_assessments_total",
			Help: "Conformity assessments by property and outcome",
		}, []string{"property", "outcome"}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "en13813_conformity_batch_size",
			Help:    "Number of sample sets per batch assessment",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
	}
}

func (m *Metrics) IncrementAssessment(property, outcome string) {
	if m == nil {
		return
	}
	m.Assessments.WithLabelValues(property, outcome).Inc()
}

func (m *Metrics) ObserveBatchSize(n int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(n))
}
