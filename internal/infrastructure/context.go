package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type traceIDKey struct{}

// WithTraceID stores a trace id in ctx. The log handler adds it to every
// record logged with that context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// GetTraceID returns the trace id stored in ctx, or ""
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

// EnsureTraceID gives ctx a random trace id unless it already has one.
// Command line runs use it to correlate the log lines of one comparison.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, uuid.NewString())
}

// WithComponent tags logger with a component name. A nil logger falls back
// to the global one.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}

// WithError tags logger with err's message; a nil err leaves it unchanged
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With(slog.String("error", err.Error()))
}
