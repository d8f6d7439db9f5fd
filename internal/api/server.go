// Package api serves the operational HTTP surface of a long-running ox
// client: health, Prometheus metrics, and read-only views of the local
// catalog snapshot and the statistics warehouse.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/db"
	"github.com/patrickwarner/oxclient/internal/middleware"
	"github.com/patrickwarner/oxclient/internal/observability"
	"github.com/patrickwarner/oxclient/internal/oxapi"
	"github.com/patrickwarner/oxclient/internal/reporting"
)

// CatalogReader reads entity snapshots. *db.Postgres implements it.
type CatalogReader interface {
	LoadEntities(ctx context.Context, endpoint, kind string) ([]db.EntitySnapshot, error)
}

// ReportReader reads archived daily statistics. *reporting.Warehouse
// implements it.
type ReportReader interface {
	QueryDaily(ctx context.Context, kind oxapi.Kind, id int, from, to time.Time) ([]reporting.DailyMetrics, error)
}

// Server groups dependencies for HTTP handlers. Catalog and Reports may be
// nil when the corresponding store is not configured.
type Server struct {
	Logger   *zap.Logger
	Endpoint string
	Catalog  CatalogReader
	Reports  ReportReader
	Metrics  observability.MetricsRegistry

	clientMu sync.Mutex
	client   *oxapi.Client
}

// NewServer constructs a Server around client, which it takes ownership of:
// all further use must go through WithClient.
func NewServer(logger *zap.Logger, client *oxapi.Client, endpoint string, catalog CatalogReader, reports ReportReader, metrics observability.MetricsRegistry) *Server {
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Server{
		Logger:   logger,
		Endpoint: endpoint,
		Catalog:  catalog,
		Reports:  reports,
		Metrics:  metrics,
		client:   client,
	}
}

// WithClient runs fn with exclusive use of the client. oxapi.Client is not
// safe for concurrent use, so handlers and background jobs share it here.
func (s *Server) WithClient(fn func(*oxapi.Client) error) error {
	s.clientMu.Lock()
	defer s.clientMu.Unlock()
	return fn(s.client)
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.WithTraceLogger(s.Logger))
	r.HandleFunc("/health", s.HealthHandler).Methods("GET")
	r.HandleFunc("/catalog/{kind}", s.CatalogHandler).Methods("GET")
	r.HandleFunc("/reports/{kind}/{id:[0-9]+}", s.ReportHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) observe(endpoint, method string, status int, start time.Time) {
	s.Metrics.IncrementRequests(endpoint, method, observability.StatusLabel(status))
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
