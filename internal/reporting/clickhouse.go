package reporting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/observability"
	"github.com/patrickwarner/oxclient/internal/oxapi"
)

// ErrUnavailable is returned when the warehouse is not configured.
var ErrUnavailable = errors.New("statistics warehouse unavailable")

const createDailyTable = `CREATE TABLE IF NOT EXISTS ox_daily_statistics (
    endpoint     String,
    entity_kind  LowCardinality(String),
    entity_id    Int32,
    day          Date,
    requests     Int64,
    impressions  Int64,
    clicks       Int64,
    conversions  Int64,
    revenue      Float64,
    exported_at  DateTime
) ENGINE = ReplacingMergeTree(exported_at)
ORDER BY (endpoint, entity_kind, entity_id, day)`

// Warehouse wraps a ClickHouse connection holding archived daily statistics.
// Re-exporting a day replaces the earlier row once ClickHouse merges parts.
type Warehouse struct {
	DB       *sql.DB
	Endpoint string
	Metrics  observability.MetricsRegistry
}

// InitClickHouse connects to ClickHouse and ensures the statistics table exists.
func InitClickHouse(ctx context.Context, dsn, endpoint string, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration, metrics observability.MetricsRegistry) (*Warehouse, error) {
	db, err := sql.Open("clickhouse", dsn)
	if err != nil {
		return nil, fmt.Errorf("clickhouse open: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("clickhouse ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, createDailyTable); err != nil {
		return nil, fmt.Errorf("clickhouse create table: %w", err)
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}

	zap.L().Info("Connected to ClickHouse")
	return &Warehouse{DB: db, Endpoint: endpoint, Metrics: metrics}, nil
}

// ExportDaily archives the daily metrics of one entity in a single batch.
func (w *Warehouse) ExportDaily(ctx context.Context, kind oxapi.Kind, id int, daily []DailyMetrics) (int, error) {
	if w == nil || w.DB == nil {
		return 0, ErrUnavailable
	}
	if len(daily) == 0 {
		return 0, nil
	}

	tx, err := w.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO ox_daily_statistics
        (endpoint, entity_kind, entity_id, day, requests, impressions, clicks, conversions, revenue, exported_at)`)
	if err != nil {
		return 0, fmt.Errorf("prepare batch: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, d := range daily {
		if _, err := stmt.ExecContext(ctx, w.Endpoint, string(kind), int32(id), d.Day,
			d.Requests, d.Impressions, d.Clicks, d.Conversions, d.Revenue, now); err != nil {
			return 0, fmt.Errorf("append %s: %w", d.Day.Format("2006-01-02"), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("send batch: %w", err)
	}
	w.Metrics.AddExportedRows("clickhouse", len(daily))
	return len(daily), nil
}

// QueryDaily reads archived metrics for an entity between from and to,
// inclusive, collapsing duplicate exports of the same day.
func (w *Warehouse) QueryDaily(ctx context.Context, kind oxapi.Kind, id int, from, to time.Time) ([]DailyMetrics, error) {
	if w == nil || w.DB == nil {
		return nil, ErrUnavailable
	}
	query := `
		SELECT day, requests, impressions, clicks, conversions, revenue
		FROM ox_daily_statistics FINAL
		WHERE endpoint = ? AND entity_kind = ? AND entity_id = ?
			AND day >= ? AND day <= ?
		ORDER BY day`

	rows, err := w.DB.QueryContext(ctx, query, w.Endpoint, string(kind), int32(id), from, to)
	if err != nil {
		return nil, fmt.Errorf("query daily statistics: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []DailyMetrics
	for rows.Next() {
		var m DailyMetrics
		if err := rows.Scan(&m.Day, &m.Requests, &m.Impressions, &m.Clicks, &m.Conversions, &m.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily statistics: %w", err)
		}
		m.derive()
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close terminates the ClickHouse connection.
func (w *Warehouse) Close() {
	if w != nil && w.DB != nil {
		if err := w.DB.Close(); err != nil {
			zap.L().Error("clickhouse close", zap.Error(err))
		}
	}
}
