package products

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts form activity. A nil *Metrics records nothing.
type Metrics struct {
	submissions        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	deletions          prometheus.Counter
	products           prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "productform",
			Name:      "submissions_total",
			Help:      "Accepted form submissions by mode.",
		}, []string{"mode"}),
		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "productform",
			Name:      "validation_failures_total",
			Help:      "Rejected form submissions by field.",
		}, []string{"field"}),
		deletions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "productform",
			Name:      "deletions_total",
			Help:      "Products removed from the list.",
		}),
		products: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "productform",
			Name:      "products",
			Help:      "Products currently in the list.",
		}),
	}
}

func (m *Metrics) submitted(mode Mode, count int) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(mode.String()).Inc()
	m.products.Set(float64(count))
}

func (m *Metrics) rejected(field string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

func (m *Metrics) deleted(count int) {
	if m == nil {
		return
	}
	m.deletions.Inc()
	m.products.Set(float64(count))
}
