package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// remote procedure calls per method and outcome (ok, fault, error, rejected)
	CallCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oxclient_calls_total",
			Help: "Total remote procedure calls issued",
		},
		[]string{"method", "outcome"},
	)

	// remote call latency in seconds per method
	CallLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oxclient_call_duration_seconds",
			Help:    "Histogram of remote call latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// session state transitions, labelled by the state entered
	SessionTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oxclient_session_transitions_total",
			Help: "Total session state transitions",
		},
		[]string{"state"},
	)

	// statistics rows returned per procedure
	StatisticsRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oxclient_statistics_rows_total",
			Help: "Total statistics rows returned",
		},
		[]string{"method"},
	)

	// rows written to ClickHouse or Postgres
	ExportedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oxclient_exported_rows_total",
			Help: "Total rows written by exports and catalog snapshots",
		},
		[]string{"target"},
	)

	// session store operations per op and outcome
	SessionStoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oxclient_session_store_ops_total",
			Help: "Total session store operations",
		},
		[]string{"op", "outcome"},
	)

	// HTTP API requests
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oxclient_http_requests_total",
			Help: "Total HTTP requests served by the API",
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oxclient_http_request_duration_seconds",
			Help:    "Histogram of API request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		CallCount,
		CallLatency,
		SessionTransitions,
		StatisticsRows,
		ExportedRows,
		SessionStoreOps,
		RequestCount,
		RequestLatency,
	)
}
