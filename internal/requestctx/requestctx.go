// Package requestctx carries request-scoped values that both the transport
// layer and deeper packages read.
package requestctx

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ctxKey struct{}

// WithRequestID stores the id and a logger that stamps it on every event.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, ctxKey{}, requestID)
	logger := log.Logger.With().Str("requestId", requestID).Logger()
	return logger.WithContext(ctx)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(ctxKey{}).(string); ok {
		return value
	}
	return ""
}

// Logger returns the request logger, or the global logger outside a request.
func Logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
