package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/oxclient/internal/db"
	"github.com/patrickwarner/oxclient/internal/observability"
	"github.com/patrickwarner/oxclient/internal/oxapi"
)

type countingTransport struct {
	logons  int
	logoffs int
}

func (t *countingTransport) Call(_ context.Context, method string, args []any) (any, error) {
	switch method {
	case oxapi.MethodLogon:
		t.logons++
		return "T1", nil
	case oxapi.MethodLogoff:
		t.logoffs++
		return true, nil
	}
	return args[0], nil
}

var creds = Credentials{Endpoint: "http://ads.example.com/xmlrpc/", Username: "alice", Password: "secret"}

func newRedisManager(t *testing.T) (*Manager, *db.RedisStore, *observability.MockMetricsRegistry) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := &db.RedisStore{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(store.Close)
	metrics := observability.NewMockMetricsRegistry()
	return NewManager(store, time.Minute, nil, metrics), store, metrics
}

func TestOpenLogsOnThenResumes(t *testing.T) {
	m, store, metrics := newRedisManager(t)
	ctx := context.Background()

	ft := &countingTransport{}
	first := oxapi.NewClient(ft, nil, nil)
	resumed, err := m.Open(ctx, first, creds)
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.Equal(t, 1, ft.logons)

	stored, err := store.LoadSession(ctx, db.SessionKey(creds.Endpoint, creds.Username), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "T1", stored)

	second := oxapi.NewClient(ft, nil, nil)
	resumed, err = m.Open(ctx, second, creds)
	require.NoError(t, err)
	assert.True(t, resumed)
	assert.Equal(t, 1, ft.logons, "a stored session must not log on again")
	assert.Equal(t, "T1", second.Token())

	got, err := second.SendWithSession(ctx, "ox.echo")
	require.NoError(t, err)
	assert.Equal(t, "T1", got)

	assert.Equal(t, 1, metrics.StoreOps["load|miss"])
	assert.Equal(t, 1, metrics.StoreOps["load|hit"])
	assert.Equal(t, 1, metrics.StoreOps["save|ok"])
}

func TestCloseForgetsSession(t *testing.T) {
	m, store, _ := newRedisManager(t)
	ctx := context.Background()
	ft := &countingTransport{}
	client := oxapi.NewClient(ft, nil, nil)

	_, err := m.Open(ctx, client, creds)
	require.NoError(t, err)
	require.NoError(t, m.Close(ctx, client, creds))
	assert.Equal(t, 1, ft.logoffs)
	assert.Equal(t, oxapi.StateClosed, client.State())

	_, err = store.LoadSession(ctx, db.SessionKey(creds.Endpoint, creds.Username), time.Minute)
	assert.ErrorIs(t, err, db.ErrSessionNotFound)
}

func TestOpenWithoutStore(t *testing.T) {
	m := NewManager(nil, time.Minute, nil, nil)
	ft := &countingTransport{}
	client := oxapi.NewClient(ft, nil, nil)

	resumed, err := m.Open(context.Background(), client, creds)
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.Equal(t, oxapi.StateAuthenticated, client.State())
}

func TestOpenSurvivesStoreOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	store := &db.RedisStore{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(store.Close)
	mr.Close()

	metrics := observability.NewMockMetricsRegistry()
	m := NewManager(store, time.Minute, nil, metrics)
	ft := &countingTransport{}
	client := oxapi.NewClient(ft, nil, nil)

	_, err := m.Open(context.Background(), client, creds)
	require.NoError(t, err)
	assert.Equal(t, 1, ft.logons)
	assert.Equal(t, 1, metrics.StoreOps["load|error"])
	assert.Equal(t, 1, metrics.StoreOps["save|error"])
}

func TestReopenReplacesRejectedToken(t *testing.T) {
	m, store, _ := newRedisManager(t)
	ctx := context.Background()
	key := db.SessionKey(creds.Endpoint, creds.Username)
	require.NoError(t, store.SaveSession(ctx, key, "STALE", time.Minute))

	ft := &countingTransport{}
	client := oxapi.NewClient(ft, nil, nil)
	resumed, err := m.Open(ctx, client, creds)
	require.NoError(t, err)
	require.True(t, resumed)
	assert.Equal(t, "STALE", client.Token())

	require.NoError(t, m.Reopen(ctx, client, creds))
	assert.Equal(t, 1, ft.logoffs)
	assert.Equal(t, 1, ft.logons)
	assert.Equal(t, "T1", client.Token())

	stored, err := store.LoadSession(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "T1", stored)
}

func TestExpired(t *testing.T) {
	assert.True(t, Expired(&oxapi.RemoteFault{Method: "ox.getZone", Code: 3, Message: "Session ID is invalid"}))
	assert.False(t, Expired(assert.AnError))
	assert.False(t, Expired(nil))
}
