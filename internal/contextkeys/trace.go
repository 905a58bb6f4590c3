package contextkeys

import (
	"avacasa/internal/core/port"
	"context"
)

type traceIDKey struct{}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext возвращает "" без trace_id
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

// WithTraceScope кладет в ctx trace_id и логгер с полем trace_id.
// Один вызов на HTTP-запрос или сессию терминала.
func WithTraceScope(ctx context.Context, logger port.LoggerPort, traceID string) (context.Context, port.LoggerPort) {
	if logger == nil {
		logger = discard
	}
	scoped := logger.WithFields(port.Fields{"trace_id": traceID})
	ctx = ContextWithTraceID(ctx, traceID)
	return ContextWithLogger(ctx, scoped), scoped
}
