package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/config"
	"github.com/patrickwarner/oxclient/internal/db"
	"github.com/patrickwarner/oxclient/internal/observability"
	"github.com/patrickwarner/oxclient/internal/oxapi"
	"github.com/patrickwarner/oxclient/internal/reporting"
	"github.com/patrickwarner/oxclient/internal/session"
	"github.com/patrickwarner/oxclient/internal/transport/xmlrpc"
)

// app holds what the commands share. Stores are connected lazily so a
// command only needs the backends it uses.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	metrics  observability.MetricsRegistry
	out      io.Writer
	endpoint string
	client   *oxapi.Client
	sessions *session.Manager
	creds    session.Credentials

	redis     *db.RedisStore
	pg        *db.Postgres
	warehouse *reporting.Warehouse
}

func newApp(cfg config.Config, logger *zap.Logger, out io.Writer) *app {
	metrics := observability.NewPrometheusRegistry()
	endpoint := cfg.Endpoint()
	transport := xmlrpc.NewClient(endpoint, cfg.OxTimeout, logger)
	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		out:      out,
		endpoint: endpoint,
		client:   oxapi.NewClient(transport, logger, metrics),
		creds:    session.Credentials{Endpoint: endpoint, Username: cfg.OxUsername, Password: cfg.OxPassword},
	}
}

// sessionManager connects the Redis token store on first use. Without Redis
// every invocation logs on by itself.
func (a *app) sessionManager(ctx context.Context) *session.Manager {
	if a.sessions != nil {
		return a.sessions
	}
	var store session.Store
	r, err := db.InitRedis(ctx, a.cfg.RedisAddr)
	if err != nil {
		a.logger.Warn("session store unavailable, logging on directly", zap.Error(err))
	} else {
		a.redis = r
		store = r
	}
	a.sessions = session.NewManager(store, a.cfg.SessionTTL, a.logger, a.metrics)
	return a.sessions
}

// open authenticates the client. The session is left open in the store for
// the next invocation.
func (a *app) open(ctx context.Context) error {
	if a.cfg.OxUsername == "" {
		return fmt.Errorf("OX_USERNAME is required")
	}
	resumed, err := a.sessionManager(ctx).Open(ctx, a.client, a.creds)
	if err != nil {
		return err
	}
	a.logger.Debug("session open", zap.String("endpoint", a.endpoint), zap.Bool("resumed", resumed))
	return nil
}

func (a *app) postgres(ctx context.Context) (*db.Postgres, error) {
	if a.pg != nil {
		return a.pg, nil
	}
	pg, err := db.InitPostgres(ctx, a.cfg.PostgresDSN, a.cfg.DBMaxOpenConns, a.cfg.DBMaxIdleConns, a.cfg.DBConnMaxLifetime, a.cfg.DBConnMaxIdleTime)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}
	a.pg = pg
	return pg, nil
}

func (a *app) clickhouse(ctx context.Context) (*reporting.Warehouse, error) {
	if a.warehouse != nil {
		return a.warehouse, nil
	}
	w, err := reporting.InitClickHouse(ctx, a.cfg.ClickHouseDSN, a.endpoint,
		a.cfg.CHMaxOpenConns, a.cfg.CHMaxIdleConns, a.cfg.CHConnMaxLifetime, a.cfg.CHConnMaxIdleTime, a.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to connect clickhouse: %w", err)
	}
	a.warehouse = w
	return w, nil
}

func (a *app) Close() {
	if a.warehouse != nil {
		a.warehouse.Close()
	}
	if a.pg != nil {
		a.pg.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
