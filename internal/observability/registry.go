package observability

import (
	"strconv"
	"time"
)

// MetricsRegistry provides an interface for recording client metrics.
// Components receive it by injection instead of touching the Prometheus globals.
type MetricsRegistry interface {
	// Remote call metrics
	IncrementCalls(method, outcome string)
	RecordCallLatency(method string, duration time.Duration)

	// Session lifecycle metrics
	IncrementSessionTransitions(state string)

	// Statistics metrics
	AddStatisticsRows(method string, rows int)

	// Export and snapshot metrics
	AddExportedRows(target string, rows int)

	// Session store metrics
	IncrementSessionStoreOps(op, outcome string)

	// Health endpoint metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics.
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementCalls(method, outcome string) {
	CallCount.WithLabelValues(method, outcome).Inc()
}

func (r *PrometheusRegistry) RecordCallLatency(method string, duration time.Duration) {
	CallLatency.WithLabelValues(method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementSessionTransitions(state string) {
	SessionTransitions.WithLabelValues(state).Inc()
}

func (r *PrometheusRegistry) AddStatisticsRows(method string, rows int) {
	StatisticsRows.WithLabelValues(method).Add(float64(rows))
}

func (r *PrometheusRegistry) AddExportedRows(target string, rows int) {
	ExportedRows.WithLabelValues(target).Add(float64(rows))
}

func (r *PrometheusRegistry) IncrementSessionStoreOps(op, outcome string) {
	SessionStoreOps.WithLabelValues(op, outcome).Inc()
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementCalls(method, outcome string)                               {}
func (r *NoOpRegistry) RecordCallLatency(method string, duration time.Duration)             {}
func (r *NoOpRegistry) IncrementSessionTransitions(state string)                            {}
func (r *NoOpRegistry) AddStatisticsRows(method string, rows int)                           {}
func (r *NoOpRegistry) AddExportedRows(target string, rows int)                             {}
func (r *NoOpRegistry) IncrementSessionStoreOps(op, outcome string)                         {}
func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                   {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}

// StatusLabel renders an HTTP status code as a metric label.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
