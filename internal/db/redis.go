package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when no token is stored for a session key.
var ErrSessionNotFound = errors.New("session not found")

// RedisStore keeps ox session tokens so short-lived processes can share one
// remote session instead of logging on for every invocation.
type RedisStore struct {
	Client *redis.Client
}

// InitRedis initializes a Redis client and returns a RedisStore.
func InitRedis(ctx context.Context, addr string) (*RedisStore, error) {
	rs := &RedisStore{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
	}

	// Add OpenTelemetry instrumentation to Redis client
	if err := redisotel.InstrumentTracing(rs.Client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}

	if err := rs.Client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	zap.L().Info("Connected to Redis", zap.String("addr", addr))
	return rs, nil
}

// SessionKey identifies the session of one user on one endpoint.
func SessionKey(endpoint, username string) string {
	return fmt.Sprintf("oxsession:%s:%s", endpoint, username)
}

// SaveSession stores token under key for ttl.
func (r *RedisStore) SaveSession(ctx context.Context, key, token string, ttl time.Duration) error {
	if err := r.Client.Set(ctx, key, token, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession returns the token stored under key and extends its lifetime
// to ttl, mirroring the sliding expiry of the remote session.
func (r *RedisStore) LoadSession(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if err := r.Client.Expire(ctx, key, ttl).Err(); err != nil {
		return "", fmt.Errorf("refresh session: %w", err)
	}
	return token, nil
}

// DeleteSession forgets the token under key. A missing key is not an error.
func (r *RedisStore) DeleteSession(ctx context.Context, key string) error {
	if err := r.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close shuts down the Redis client.
func (r *RedisStore) Close() {
	if r != nil && r.Client != nil {
		if err := r.Client.Close(); err != nil {
			zap.L().Error("redis close", zap.Error(err))
		}
	}
}
