package configs

import (
	"avacasa/internal/constants"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBconfig struct {
	URL      string
	MaxConns int
	MinConns int
}

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

type RabbitMQConfig struct {
	Enabled    bool
	URL        string
	Exchange   string
	RoutingKey string
}

type StdoutLogConfig struct {
	Level    string
	JSON     bool
	UseColor bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig - конфигурация REST-сервиса выдачи
type AppConfig struct {
	AppName      string
	Database     DBconfig
	Rest         RESTconfig
	RabbitMQ     RabbitMQConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// SearchClientConfig - конфигурация терминальной страницы поиска
type SearchClientConfig struct {
	AppName        string
	ListingAPIURL  string
	AdminListing   bool
	PageSize       int
	DebounceDelay  time.Duration
	RequestTimeout time.Duration
	InitialQuery   string
	FluentBit      FluentBitConfig
	StdoutLogger   StdoutLogConfig
}

// loadEnvFile загружает .env; отсутствие файла не является ошибкой
func loadEnvFile(envPath []string) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using environment variables.\n", envPath, err)
	}
}

// LoadConfig загружает конфигурацию REST-сервиса из переменных окружения
func LoadConfig(envPath ...string) (*AppConfig, error) {
	loadEnvFile(envPath)

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", constants.APIServiceName)

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.Database.MaxConns = getEnvAsInt("DATABASE_MAX_CONNS", 10)
	cfg.Database.MinConns = getEnvAsInt("DATABASE_MIN_CONNS", 1)

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
		cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_ANALYTICS_EXCHANGE", constants.AnalyticsExchangeName)
		cfg.RabbitMQ.RoutingKey = getEnvAsString("RABBITMQ_SEARCH_ROUTING_KEY", constants.SearchPerformedRoutingKey)
	}

	cfg.FluentBit = loadFluentBitConfig()
	cfg.StdoutLogger = loadStdoutLogConfig()

	return cfg, nil
}

// LoadSearchClientConfig загружает конфигурацию терминальной страницы поиска
func LoadSearchClientConfig(envPath ...string) (*SearchClientConfig, error) {
	loadEnvFile(envPath)

	cfg := &SearchClientConfig{}
	cfg.AppName = getEnvAsString("APP_NAME", constants.SearchClientName)

	cfg.ListingAPIURL = getEnvAsString("LISTING_API_URL", "http://localhost:8080")
	if !strings.HasPrefix(cfg.ListingAPIURL, "http://") && !strings.HasPrefix(cfg.ListingAPIURL, "https://") {
		return nil, fmt.Errorf("LISTING_API_URL must start with http:// or https://, got %q", cfg.ListingAPIURL)
	}
	cfg.AdminListing = getEnvAsBool("SEARCH_ADMIN_LISTING", false)

	cfg.PageSize = getEnvAsInt("SEARCH_PAGE_SIZE", 12)
	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		log.Printf("Warning: SEARCH_PAGE_SIZE=%d is out of range [1, 100]. Using default value: 12\n", cfg.PageSize)
		cfg.PageSize = 12
	}
	cfg.DebounceDelay = time.Duration(getEnvAsInt("SEARCH_DEBOUNCE_MS", 500)) * time.Millisecond
	cfg.RequestTimeout = time.Duration(getEnvAsInt("SEARCH_REQUEST_TIMEOUT_SEC", 15)) * time.Second
	cfg.InitialQuery = getEnvAsString("SEARCH_INITIAL_QUERY", "")

	cfg.FluentBit = loadFluentBitConfig()
	cfg.StdoutLogger = loadStdoutLogConfig()

	return cfg, nil
}

func loadFluentBitConfig() FluentBitConfig {
	cfg := FluentBitConfig{Enabled: getEnvAsBool("FLUENTBIT_ENABLED", false)}
	if cfg.Enabled {
		cfg.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.Enabled = false
		}

		cfg.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}
	return cfg
}

func loadStdoutLogConfig() StdoutLogConfig {
	return StdoutLogConfig{
		Level:    getEnvAsString("STDOUT_LOG_LEVEL", "debug"),
		JSON:     getEnvAsBool("STDOUT_LOG_JSON", false),
		UseColor: getEnvAsBool("STDOUT_LOG_COLOR", true),
	}
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsSlice - список через запятую
func getEnvAsSlice(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
