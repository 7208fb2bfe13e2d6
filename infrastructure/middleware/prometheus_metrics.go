// Package middleware provides cross-cutting concerns for the grouping engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-cohort/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of grouper run latency,
// outcome counts, and partition score quality.
type PrometheusMetrics struct {
	runLatency     *prometheus.HistogramVec
	runCounter     *prometheus.CounterVec
	partitionScore *prometheus.GaugeVec
	rosterSize     *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and
// registers all required metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		runLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "grouper_run_duration_seconds",
				Help:    "Execution time of grouper runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "strategy"},
		),
		runCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grouper_runs_total",
				Help: "Total number of grouper runs by strategy and status.",
			},
			[]string{"strategy", "status"},
		),
		partitionScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "grouper_partition_score",
				Help: "Total weighted score of the most recent partition per strategy.",
			},
			[]string{"strategy"},
		),
		rosterSize: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "grouper_roster_size",
				Help: "Roster size of the most recent grouper run per strategy.",
			},
			[]string{"strategy"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// run latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	strategy, ok := labels["strategy"]
	if !ok {
		strategy = "unknown"
	}
	pm.runLatency.WithLabelValues(operation, strategy).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by
// incrementing Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	strategy, ok := labels["strategy"]
	if !ok {
		strategy = "unknown"
	}

	switch metric {
	case "grouper_runs_total":
		status, ok := labels["status"]
		if !ok {
			status = "unknown"
		}
		pm.runCounter.WithLabelValues(strategy, status).Add(value)
	default:
		pm.runCounter.WithLabelValues(strategy, metric).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauges.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	strategy, ok := labels["strategy"]
	if !ok {
		strategy = "unknown"
	}

	switch metric {
	case "grouper_partition_score":
		pm.partitionScore.WithLabelValues(strategy).Set(value)
	case "grouper_roster_size":
		pm.rosterSize.WithLabelValues(strategy).Set(value)
	}
}
