package rabbitmq_common

// Logger - минимальный логгер пакета, чтобы не зависеть от логгера сервиса.
// В сервисе его реализует rabbitmq_adapter.NewLoggerBridge.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{})        {}
func (discardLogger) Info(string, ...interface{})         {}
func (discardLogger) Warn(string, ...interface{})         {}
func (discardLogger) Error(error, string, ...interface{}) {}

// NewNoopLogger - логгер по умолчанию, когда Config.Logger не задан
func NewNoopLogger() Logger {
	return discardLogger{}
}
