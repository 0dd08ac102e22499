// Package metrics provides Prometheus metrics for origin determination
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Determination metrics
	DeterminationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fta_determinations_total",
			Help: "Total number of origin determinations by verdict",
		},
		[]string{"rule", "verdict"},
	)

	DeterminationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fta_determination_duration_seconds",
			Help:    "Time taken for a full origin determination",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"rule"},
	)

	ComponentsEvaluated = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fta_bom_components",
			Help:    "Number of exploded BOM components per determination",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
		[]string{"rule"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fta_errors_total",
			Help: "Total number of determination errors",
		},
		[]string{"type"},
	)

	// Job metrics
	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fta_jobs_processed_total",
			Help: "Total number of queue jobs processed by action",
		},
		[]string{"action_type", "result"},
	)
)

// RecordDetermination records a completed determination
func RecordDetermination(rule, verdict string, components int, duration time.Duration) {
	DeterminationsTotal.WithLabelValues(rule, verdict).Inc()
	DeterminationDuration.WithLabelValues(rule).Observe(duration.Seconds())
	ComponentsEvaluated.WithLabelValues(rule).Observe(float64(components))
}

// RecordError records a determination error by type
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordJob records a processed queue job
func RecordJob(actionType, result string) {
	JobsProcessed.WithLabelValues(actionType, result).Inc()
}
