package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/api"
	"github.com/patrickwarner/oxclient/internal/catalog"
	"github.com/patrickwarner/oxclient/internal/oxapi"
	"github.com/patrickwarner/oxclient/internal/session"
)

// runServe serves the HTTP API on METRICS_ADDR and refreshes the catalog
// every SYNC_INTERVAL. Postgres and ClickHouse are optional; their routes
// answer 503 without them.
func runServe(ctx context.Context, a *app, _ []string) error {
	if err := a.open(ctx); err != nil {
		return err
	}

	var catalogReader api.CatalogReader
	pg, err := a.postgres(ctx)
	if err != nil {
		a.logger.Warn("catalog disabled", zap.Error(err))
	} else {
		catalogReader = pg
	}
	var reports api.ReportReader
	w, err := a.clickhouse(ctx)
	if err != nil {
		a.logger.Warn("reports disabled", zap.Error(err))
	} else {
		reports = w
	}

	srvDeps := api.NewServer(a.logger, a.client, a.endpoint, catalogReader, reports, a.metrics)
	srv := &http.Server{
		Addr:         a.cfg.MetricsAddr,
		Handler:      srvDeps.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	a.logger.Info("oxctl server running", zap.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	if pg != nil && a.cfg.SyncInterval > 0 {
		sync := func() {
			err := srvDeps.WithClient(func(c *oxapi.Client) error {
				_, err := catalog.NewSyncer(c, pg, a.endpoint, a.logger, a.metrics).Sync(ctx)
				return err
			})
			if err != nil {
				a.logger.Error("catalog sync", zap.Error(err))
				a.reopen(ctx, srvDeps, err)
			}
		}
		sync()
		ticker := time.NewTicker(a.cfg.SyncInterval)
		go func() {
			for {
				select {
				case <-ticker.C:
					sync()
				case <-ctx.Done():
					ticker.Stop()
					return
				}
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// reopen replaces a session the service no longer accepts. Any remote fault
// from a long-running server is treated as a possibly expired token.
func (a *app) reopen(ctx context.Context, srv *api.Server, cause error) {
	if !session.Expired(cause) {
		return
	}
	err := srv.WithClient(func(c *oxapi.Client) error {
		return a.sessions.Reopen(ctx, c, a.creds)
	})
	if err != nil {
		a.logger.Error("session reopen failed", zap.Error(err))
		return
	}
	a.logger.Info("session reopened")
}
