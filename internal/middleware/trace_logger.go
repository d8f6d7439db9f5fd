// Package middleware carries request-scoped loggers through context.
package middleware

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type loggerKey struct{}

// ContextWithLogger returns a copy of ctx carrying logger.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithTraceLogger returns middleware that stores a trace-annotated logger in
// the request context.
func WithTraceLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if span := trace.SpanFromContext(r.Context()); span.SpanContext().IsValid() {
				r = r.WithContext(ContextWithLogger(r.Context(), withSpan(logger, span)))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoggerFromContext returns the logger stored in ctx. Otherwise it annotates
// fallback with the active span, if any.
func LoggerFromContext(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return withSpan(fallback, span)
	}
	return fallback
}

func withSpan(logger *zap.Logger, span trace.Span) *zap.Logger {
	return logger.With(
		zap.String("trace_id", span.SpanContext().TraceID().String()),
		zap.String("span_id", span.SpanContext().SpanID().String()),
	)
}
