package logger_adapter

import (
	"avacasa/internal/core/port"
	"errors"
)

var ErrNoLoggers = errors.New("multilogger: at least one logger is required")

// MultiLoggerAdapter пишет каждую запись во все sink'и: консоль и Fluentd
type MultiLoggerAdapter struct {
	sinks []port.LoggerPort
}

// NewMultiloggerAdapter пропускает nil и раскрывает вложенные MultiLoggerAdapter.
// Если остался один sink, он возвращается как есть.
func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	sinks := flattenSinks(loggers)
	switch len(sinks) {
	case 0:
		return nil, ErrNoLoggers
	case 1:
		return sinks[0], nil
	}
	return &MultiLoggerAdapter{sinks: sinks}, nil
}

func flattenSinks(loggers []port.LoggerPort) []port.LoggerPort {
	sinks := make([]port.LoggerPort, 0, len(loggers))
	for _, l := range loggers {
		switch v := l.(type) {
		case nil:
		case *MultiLoggerAdapter:
			if v != nil {
				sinks = append(sinks, v.sinks...)
			}
		default:
			sinks = append(sinks, v)
		}
	}
	return sinks
}

func (m *MultiLoggerAdapter) each(write func(port.LoggerPort)) {
	for _, sink := range m.sinks {
		write(sink)
	}
}

func (m *MultiLoggerAdapter) Info(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Info(msg, fields) })
}

func (m *MultiLoggerAdapter) Warn(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Warn(msg, fields) })
}

func (m *MultiLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Error(msg, err, fields) })
}

func (m *MultiLoggerAdapter) Debug(msg string, fields port.Fields) {
	m.each(func(l port.LoggerPort) { l.Debug(msg, fields) })
}

func (m *MultiLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	scoped := make([]port.LoggerPort, len(m.sinks))
	for i, sink := range m.sinks {
		scoped[i] = sink.WithFields(fields)
	}
	return &MultiLoggerAdapter{sinks: scoped}
}
