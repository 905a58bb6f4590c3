package internal

import (
	"avacasa/internal/adapters/listing_api_client"
	"avacasa/internal/adapters/terminal"
	"avacasa/internal/configs"
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/port"
	"avacasa/internal/core/searchpage"
	"avacasa/internal/searchcli"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/google/uuid"
)

// SearchApp - терминальная страница поиска: одна страница на процесс
type SearchApp struct {
	config       *configs.SearchClientConfig
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	controller *searchpage.PageController
	session    *searchcli.Session
	in         io.Reader
}

// NewSearchApp собирает страницу поиска поверх HTTP-клиента сервиса выдачи.
// args - query string стартового адреса, например "search=goa&type=villa".
func NewSearchApp(args []string) (*SearchApp, error) {
	cfg, err := configs.LoadSearchClientConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading search client configuration: %w", err)
	}

	// stdout занят страницей, логи идут в stderr
	baseLogger, fluentClient, err := initLoggers(cfg.AppName, cfg.StdoutLogger, cfg.FluentBit, os.Stderr)
	if err != nil {
		return nil, err
	}

	initial := cfg.InitialQuery
	if len(args) > 0 {
		initial = args[0]
	}
	initialQuery, err := url.ParseQuery(initial)
	if err != nil {
		baseLogger.Warn("Initial query is malformed, starting with default filters", port.Fields{"query": initial, "error": err.Error()})
		initialQuery = url.Values{}
	}

	propertiesPath := "/api/properties"
	if cfg.AdminListing {
		propertiesPath = "/api/admin/properties"
	}
	client := listing_api_client.NewClient(listing_api_client.Config{
		BaseURL:        cfg.ListingAPIURL,
		PropertiesPath: propertiesPath,
		Timeout:        cfg.RequestTimeout,
	})

	renderer := terminal.NewRenderer(os.Stdout, "/properties")
	controller := searchpage.NewPageController(searchpage.PageConfig{
		API:           client,
		History:       renderer,
		Effects:       renderer,
		Scheduler:     searchpage.WallClock{},
		InitialQuery:  initialQuery,
		PageSize:      cfg.PageSize,
		DebounceDelay: cfg.DebounceDelay,
	})

	return &SearchApp{
		config:       cfg,
		fluentClient: fluentClient,
		logger:       baseLogger,
		controller:   controller,
		session:      searchcli.NewSession(controller, os.Stdout, renderer, controller.Wait),
		in:           os.Stdin,
	}, nil
}

// Run выполняет команды со stdin до quit, EOF или сигнала
func (a *SearchApp) Run() error {
	defer func() {
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, _ = contextkeys.WithTraceScope(ctx, a.logger, uuid.NewString())

	a.logger.Info("Search page starting", port.Fields{
		"listing_api": a.config.ListingAPIURL, "admin": a.config.AdminListing, "page_size": a.config.PageSize,
	})
	fmt.Fprintln(os.Stdout, searchcli.HelpText())

	if err := a.session.Run(ctx, a.in); err != nil {
		a.logger.Error("Search session failed", err, nil)
		return err
	}
	a.logger.Info("Search page closed", nil)
	return nil
}
