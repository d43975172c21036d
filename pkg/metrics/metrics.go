// Package metrics holds the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the evaluation pipeline collectors. All collectors are
// registered against the registry passed to New, which the /metrics
// endpoint serves.
type Metrics struct {
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	BreachChecksTotal  *prometheus.CounterVec
}

// New creates and registers the collectors.
func New(namespace string, registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		EvaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of password evaluations by resulting strength",
		}, []string{"strength"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent evaluating a password",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		BreachChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "breach_checks_total",
			Help:      "Total number of breach lookups by outcome",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.EvaluationsTotal,
		m.EvaluationDuration,
		m.BreachChecksTotal,
	)
	return m
}

// BreachOutcome maps a breach result to its metric label.
func BreachOutcome(isBreached bool, reason string) string {
	switch {
	case isBreached:
		return "breached"
	case reason != "":
		return "inconclusive"
	default:
		return "clean"
	}
}
