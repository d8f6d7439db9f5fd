// Package session shares ox session tokens between processes through a
// token store, so a command-line invocation can reuse the session of the
// previous one instead of logging on again.
package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/db"
	"github.com/patrickwarner/oxclient/internal/observability"
	"github.com/patrickwarner/oxclient/internal/oxapi"
)

// Store persists tokens by key. db.RedisStore implements it.
type Store interface {
	SaveSession(ctx context.Context, key, token string, ttl time.Duration) error
	LoadSession(ctx context.Context, key string, ttl time.Duration) (string, error)
	DeleteSession(ctx context.Context, key string) error
}

var _ Store = (*db.RedisStore)(nil)

// Credentials identify one user on one endpoint.
type Credentials struct {
	Endpoint string
	Username string
	Password string
}

func (c Credentials) key() string { return db.SessionKey(c.Endpoint, c.Username) }

// Manager opens and closes client sessions through a Store. Store failures
// are logged and degrade to a plain logon; they never fail a session.
type Manager struct {
	store   Store
	ttl     time.Duration
	logger  *zap.Logger
	metrics observability.MetricsRegistry
}

// NewManager creates a Manager. A nil store disables sharing.
func NewManager(store Store, ttl time.Duration, logger *zap.Logger, metrics observability.MetricsRegistry) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Manager{store: store, ttl: ttl, logger: logger, metrics: metrics}
}

// Open authenticates client, resuming a stored session when there is one.
// It reports whether the session was resumed.
func (m *Manager) Open(ctx context.Context, client *oxapi.Client, creds Credentials) (bool, error) {
	if m.store != nil {
		token, err := m.store.LoadSession(ctx, creds.key(), m.ttl)
		switch {
		case err == nil:
			m.metrics.IncrementSessionStoreOps("load", "hit")
			if err := client.Resume(token); err != nil {
				return false, err
			}
			m.logger.Debug("resumed stored session", zap.String("username", creds.Username))
			return true, nil
		case errors.Is(err, db.ErrSessionNotFound):
			m.metrics.IncrementSessionStoreOps("load", "miss")
		default:
			m.metrics.IncrementSessionStoreOps("load", "error")
			m.logger.Warn("session store unavailable", zap.Error(err))
		}
	}

	token, err := client.Logon(ctx, creds.Username, creds.Password)
	if err != nil {
		return false, err
	}
	if m.store != nil {
		m.record("save", m.store.SaveSession(ctx, creds.key(), token, m.ttl))
	}
	return false, nil
}

// Close logs the client off and forgets the stored token, even when the
// logoff itself fails.
func (m *Manager) Close(ctx context.Context, client *oxapi.Client, creds Credentials) error {
	_, err := client.Logoff(ctx)
	m.Forget(ctx, creds)
	return err
}

// Forget drops the stored token, e.g. after the service rejected it as
// expired.
func (m *Manager) Forget(ctx context.Context, creds Credentials) {
	if m.store == nil {
		return
	}
	m.record("delete", m.store.DeleteSession(ctx, creds.key()))
}

func (m *Manager) record(op string, err error) {
	if err != nil {
		m.metrics.IncrementSessionStoreOps(op, "error")
		m.logger.Warn("session store operation failed", zap.String("op", op), zap.Error(err))
		return
	}
	m.metrics.IncrementSessionStoreOps(op, "ok")
}

// Reopen replaces a session the service stopped accepting: the client is
// logged off locally, the stored token is dropped and a new session is
// opened, which may resume a token another process stored meanwhile.
func (m *Manager) Reopen(ctx context.Context, client *oxapi.Client, creds Credentials) error {
	if client.State() == oxapi.StateAuthenticated {
		// the old token is already rejected, so the answer does not matter
		_, _ = client.Logoff(ctx)
	}
	m.Forget(ctx, creds)
	_, err := m.Open(ctx, client, creds)
	return err
}

// Expired reports whether err may mean the session token was rejected. The
// service has no dedicated fault code for it, so every remote fault counts.
func Expired(err error) bool {
	return errors.Is(err, oxapi.ErrRemoteFault)
}
