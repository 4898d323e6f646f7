// Package manalog wires structured logging for the loader and CLI: a
// standard log/slog handler carries values through context via
// veqryn/slog-context, exposed to callers as a go-logr/logr.Logger so
// library code depends on the logr interface rather than slog directly.
package manalog

import (
	"context"
	"log/slog"
	"os"

	slogctx "github.com/veqryn/slog-context"
	"github.com/go-logr/logr"
)

// New builds the root logger, writing leveled, structured text to w.
func New(w *os.File, level slog.Level) logr.Logger {
	handler := slogctx.NewHandler(
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
		nil,
	)
	return logr.FromSlogHandler(handler)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying logger, retrievable by
// FromContext and also by any slog call made against ctx directly.
func NewContext(ctx context.Context, logger logr.Logger) context.Context {
	ctx = context.WithValue(ctx, contextKey{}, logger)
	return slogctx.NewCtx(ctx, nil)
}

// FromContext returns the logger stored in ctx, or a no-op logger if none
// was attached.
func FromContext(ctx context.Context) logr.Logger {
	if logger, ok := ctx.Value(contextKey{}).(logr.Logger); ok {
		return logger
	}
	return logr.Discard()
}

// With attaches key/value pairs to the context's logger and returns the
// resulting context, the common case at a loader call boundary
// (session id, module path) that every nested log line should carry.
func With(ctx context.Context, keysAndValues ...interface{}) context.Context {
	logger := FromContext(ctx).WithValues(keysAndValues...)
	return NewContext(ctx, logger)
}
