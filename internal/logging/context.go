package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// FromContext returns the logger carried by ctx, or Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// With returns a copy of ctx whose logger adds keyvals to every line,
// e.g. With(ctx, FieldSource, "3-intro.html") while routing one page.
func With(ctx context.Context, keyvals ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}
