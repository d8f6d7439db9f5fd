package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Postgres wraps a postgres DB connection.
type Postgres struct {
	DB *sql.DB
}

// EntitySnapshot is the last known wire map of one remote entity.
type EntitySnapshot struct {
	Endpoint   string
	Kind       string
	ID         int
	ParentKind string
	ParentID   int
	Data       map[string]any
	SyncedAt   time.Time
}

// schemaSQL sets up the necessary tables if they don't exist.
const schemaSQL = `CREATE TABLE IF NOT EXISTS ox_entities (
    endpoint    TEXT NOT NULL,
    kind        TEXT NOT NULL,
    id          INT NOT NULL,
    parent_kind TEXT NOT NULL DEFAULT '',
    parent_id   INT NOT NULL DEFAULT 0,
    data        JSONB NOT NULL,
    synced_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (endpoint, kind, id)
);

CREATE INDEX IF NOT EXISTS idx_ox_entities_parent ON ox_entities (endpoint, parent_kind, parent_id);
`

// InitPostgres connects to Postgres with connection pooling configuration.
func InitPostgres(ctx context.Context, dsn string, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (*Postgres, error) {
	// Register the otelsql wrapper for postgres
	driverName, err := otelsql.Register("postgres",
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	p := &Postgres{DB: db}
	if err := p.ensureSchema(ctx); err != nil {
		return nil, err
	}
	zap.L().Info("Connected to Postgres with connection pooling",
		zap.Int("max_open_conns", maxOpenConns),
		zap.Int("max_idle_conns", maxIdleConns),
		zap.Duration("conn_max_lifetime", connMaxLifetime))
	return p, nil
}

// Close terminates the Postgres connection.
func (p *Postgres) Close() {
	if p != nil && p.DB != nil {
		if err := p.DB.Close(); err != nil {
			zap.L().Error("postgres close", zap.Error(err))
		}
	}
}

// ensureSchema creates the required tables if they do not exist.
func (p *Postgres) ensureSchema(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UpsertEntity stores or replaces the snapshot of one entity.
func (p *Postgres) UpsertEntity(ctx context.Context, e EntitySnapshot) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("marshal %s %d: %w", e.Kind, e.ID, err)
	}
	_, err = p.DB.ExecContext(ctx, `INSERT INTO ox_entities (endpoint, kind, id, parent_kind, parent_id, data, synced_at)
        VALUES ($1,$2,$3,$4,$5,$6,NOW())
        ON CONFLICT (endpoint, kind, id) DO UPDATE
        SET parent_kind = EXCLUDED.parent_kind, parent_id = EXCLUDED.parent_id,
            data = EXCLUDED.data, synced_at = EXCLUDED.synced_at`,
		e.Endpoint, e.Kind, e.ID, e.ParentKind, e.ParentID, data)
	if err != nil {
		return fmt.Errorf("upsert %s %d: %w", e.Kind, e.ID, err)
	}
	return nil
}

// PruneEntities removes snapshots of kind that are no longer in keep, e.g.
// entities deleted remotely since the previous sync. It returns the number
// of rows removed.
func (p *Postgres) PruneEntities(ctx context.Context, endpoint, kind string, keep []int) (int64, error) {
	ids := make([]int64, len(keep))
	for i, id := range keep {
		ids[i] = int64(id)
	}
	res, err := p.DB.ExecContext(ctx, `DELETE FROM ox_entities WHERE endpoint=$1 AND kind=$2 AND NOT (id = ANY($3))`,
		endpoint, kind, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("prune %s: %w", kind, err)
	}
	return res.RowsAffected()
}

// LoadEntities returns the snapshots of kind for endpoint ordered by id.
func (p *Postgres) LoadEntities(ctx context.Context, endpoint, kind string) ([]EntitySnapshot, error) {
	rows, err := p.DB.QueryContext(ctx, `SELECT endpoint, kind, id, parent_kind, parent_id, data, synced_at
        FROM ox_entities WHERE endpoint=$1 AND kind=$2 ORDER BY id`, endpoint, kind)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			zap.L().Warn("rows close", zap.Error(err))
		}
	}()

	var out []EntitySnapshot
	for rows.Next() {
		var e EntitySnapshot
		var data []byte
		if err := rows.Scan(&e.Endpoint, &e.Kind, &e.ID, &e.ParentKind, &e.ParentID, &data, &e.SyncedAt); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		if err := json.Unmarshal(data, &e.Data); err != nil {
			return nil, fmt.Errorf("decode %s %d: %w", e.Kind, e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
