package internal

import (
	logger_adapter "avacasa/internal/adapters/logger"
	"avacasa/internal/configs"
	"avacasa/internal/core/port"
	"fmt"
	"io"

	fluentlogger "avacasa/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// initLoggers собирает stdout + (опционально) Fluent Bit логгер с service_name
func initLoggers(appName string, stdoutCfg configs.StdoutLogConfig, fluentCfg configs.FluentBitConfig, out io.Writer) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer:   out,
		Level:    logger_adapter.ParseLogLevel(stdoutCfg.Level),
		IsJSON:   stdoutCfg.JSON,
		UseColor: stdoutCfg.UseColor,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if fluentCfg.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      fluentCfg.Host,
			Port:      fluentCfg.Port,
			TagPrefix: appName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLogLevel(fluentCfg.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appName})
	baseLogger.WithFields(port.Fields{"component": "app"}).Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": fluentCfg.Enabled,
	})
	return baseLogger, fluentClient, nil
}
