package ports

import "time"

// MetricsCollector abstracts metrics collection for grouper runs so the
// engine does not depend on a concrete monitoring system.
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// Labels provide dimensional context such as the strategy name.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a named counter by value.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets a named gauge to value.
	RecordGauge(metric string, value float64, labels map[string]string)
}

// NoopMetrics is a MetricsCollector that discards all observations.
// It keeps call sites unconditional when monitoring is not configured.
type NoopMetrics struct{}

// RecordLatency implements MetricsCollector.
func (NoopMetrics) RecordLatency(string, time.Duration, map[string]string) {}

// RecordCounter implements MetricsCollector.
func (NoopMetrics) RecordCounter(string, float64, map[string]string) {}

// RecordGauge implements MetricsCollector.
func (NoopMetrics) RecordGauge(string, float64, map[string]string) {}
