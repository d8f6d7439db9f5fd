package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerFromContextFallback(t *testing.T) {
	fallback := zap.NewNop()
	assert.Same(t, fallback, LoggerFromContext(context.Background(), fallback))
}

func TestLoggerFromContextStored(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	stored := zap.New(core).With(zap.String("call", "stored"))
	ctx := ContextWithLogger(context.Background(), stored)

	LoggerFromContext(ctx, zap.NewNop()).Info("hello")
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "stored", entries[0].ContextMap()["call"])
	}
}

func TestWithTraceLoggerPassesThroughWithoutSpan(t *testing.T) {
	called := false
	h := WithTraceLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := r.Context().Value(loggerKey{}).(*zap.Logger)
		assert.False(t, ok)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.True(t, called)
}
