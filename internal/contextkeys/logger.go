package contextkeys

import (
	"avacasa/internal/core/port"
	"context"
)

type loggerKey struct{}

func ContextWithLogger(ctx context.Context, logger port.LoggerPort) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext никогда не возвращает nil: без логгера в ctx пишет в никуда
func LoggerFromContext(ctx context.Context) port.LoggerPort {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(port.LoggerPort); ok && logger != nil {
			return logger
		}
	}
	return discard
}

func NoopLogger() port.LoggerPort {
	return discard
}

var discard port.LoggerPort = discardLogger{}

type discardLogger struct{}

func (discardLogger) Info(string, port.Fields)                 {}
func (discardLogger) Warn(string, port.Fields)                 {}
func (discardLogger) Error(string, error, port.Fields)         {}
func (discardLogger) Debug(string, port.Fields)                {}
func (d discardLogger) WithFields(port.Fields) port.LoggerPort { return d }
