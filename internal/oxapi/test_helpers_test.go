package oxapi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/oxclient/internal/observability"
)

const testToken = "T"

type recordedCall struct {
	Method string
	Args   []any
}

// fakeTransport answers calls from a per-method table and records them.
type fakeTransport struct {
	mu        sync.Mutex
	calls     []recordedCall
	responses map[string]func(args []any) (any, error)
}

func newFakeTransport() *fakeTransport {
	f := &fakeTransport{responses: make(map[string]func(args []any) (any, error))}
	f.respond(MethodLogon, testToken)
	f.respond(MethodLogoff, true)
	return f
}

func (f *fakeTransport) respond(method string, result any) {
	f.responses[method] = func([]any) (any, error) { return result, nil }
}

func (f *fakeTransport) fail(method string, err error) {
	f.responses[method] = func([]any) (any, error) { return nil, err }
}

func (f *fakeTransport) Call(_ context.Context, method string, args []any) (any, error) {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{Method: method, Args: args})
	f.mu.Unlock()
	if h, ok := f.responses[method]; ok {
		return h(args)
	}
	return nil, &RemoteFault{Code: 3, Message: "Unknown method"}
}

func (f *fakeTransport) last(t *testing.T) recordedCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var fixedNow = time.Date(2024, 5, 17, 13, 45, 0, 0, time.UTC)

// newLoggedOnClient returns a client authenticated with testToken and a
// frozen clock.
func newLoggedOnClient(t *testing.T) (*Client, *fakeTransport, *observability.MockMetricsRegistry) {
	t.Helper()
	ft := newFakeTransport()
	metrics := observability.NewMockMetricsRegistry()
	c := NewClient(ft, nil, metrics)
	c.now = func() time.Time { return fixedNow }
	_, err := c.Logon(context.Background(), "alice", "secret")
	require.NoError(t, err)
	return c, ft, metrics
}
