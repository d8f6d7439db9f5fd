package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rs := &RedisStore{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(rs.Close)
	return rs, mr
}

func TestSessionRoundTrip(t *testing.T) {
	rs, mr := newTestRedisStore(t)
	ctx := context.Background()
	key := SessionKey("http://ads.example.com/www/api/v2/xmlrpc/", "alice")

	require.NoError(t, rs.SaveSession(ctx, key, "T", time.Minute))
	token, err := rs.LoadSession(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "T", token)

	mr.FastForward(50 * time.Second)
	_, err = rs.LoadSession(ctx, key, time.Minute)
	require.NoError(t, err)
	mr.FastForward(50 * time.Second)
	_, err = rs.LoadSession(ctx, key, time.Minute)
	require.NoError(t, err, "loading slides the expiry")

	require.NoError(t, rs.DeleteSession(ctx, key))
	_, err = rs.LoadSession(ctx, key, time.Minute)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	rs, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, rs.SaveSession(ctx, "k", "T", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := rs.LoadSession(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteMissingSession(t *testing.T) {
	rs, _ := newTestRedisStore(t)
	assert.NoError(t, rs.DeleteSession(context.Background(), "missing"))
}
