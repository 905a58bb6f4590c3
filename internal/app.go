package internal

import (
	postgres_adapter "avacasa/internal/adapters/postgres"
	rabbitmq_adapter "avacasa/internal/adapters/rabbitmq"
	"avacasa/internal/adapters/rest"
	"avacasa/internal/configs"
	"avacasa/internal/constants"
	"avacasa/internal/core/port"
	"avacasa/internal/core/usecase"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avacasa/pkg/postgres"
	"avacasa/pkg/rabbitmq/rabbitmq_common"
	"avacasa/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

// App - сервис выдачи объектов
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager    *rabbitmq_common.ConnectionManager
	eventsProducer *rabbitmq_producer.Publisher
}

// NewApp - composition root сервиса выдачи
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := initLoggers(appConfig.AppName, appConfig.StdoutLogger, appConfig.FluentBit, os.Stdout)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Database.URL,
		MaxConns:    int32(appConfig.Database.MaxConns),
		MinConns:    int32(appConfig.Database.MinConns),
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	application.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	propertyRepository, err := postgres_adapter.NewPropertyRepository(dbPool)
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to create property repository: %w", err)
	}
	locationRepository, err := postgres_adapter.NewLocationRepository(dbPool)
	if err != nil {
		application.closeResources()
		return nil, fmt.Errorf("failed to create location repository: %w", err)
	}
	appLogger.Info("Postgres repositories initialized.", nil)

	var searchEvents port.SearchEventPublisherPort
	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		application.connManager = connManager

		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             appConfig.RabbitMQ.Exchange,
			ExchangeType:             constants.AnalyticsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		application.eventsProducer = producer

		adapter, err := rabbitmq_adapter.NewSearchEventsAdapter(producer, appConfig.RabbitMQ.RoutingKey)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		searchEvents = adapter
		appLogger.Info("RabbitMQ search events producer initialized.", port.Fields{"exchange": appConfig.RabbitMQ.Exchange})
	} else {
		appLogger.Info("RabbitMQ disabled, search events will not be published.", nil)
	}

	findPropertiesUseCase := usecase.NewFindPropertiesUseCase(propertyRepository, searchEvents)
	getPropertyBySlugUseCase := usecase.NewGetPropertyBySlugUseCase(propertyRepository)
	getSearchLocationsUseCase := usecase.NewGetSearchLocationsUseCase(locationRepository)
	appLogger.Info("All use cases initialized.", nil)

	serverCfg := rest.ServerConfig{Port: appConfig.Rest.PORT, AllowedOrigins: appConfig.Rest.AllowedOrigins}
	router := rest.NewRouter(serverCfg,
		rest.NewPropertyHandler(findPropertiesUseCase, getPropertyBySlugUseCase),
		rest.NewLocationHandler(getSearchLocationsUseCase),
		rest.NewMetrics(constants.MetricsNamespace),
		baseLogger,
	)
	application.apiServer = rest.NewServer(serverCfg, router, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

// Run запускает HTTP-сервер и ждет сигнала завершения
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.closeResources()
	}()

	errorsCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		return err
	}
}

// closeResources закрывает то, что успело открыться; порядок обратный созданию
func (a *App) closeResources() {
	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
