package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system:
// the HTTP server, the Postgres database, the Alpha Vantage market-data API and the
// per-user watch list.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=stock_monitor
//	ALPHAVANTAGE_API_KEY=demo
//	ALPHAVANTAGE_INTERVAL=5min
//	WATCHLIST_MAX_SYMBOLS=5
type Config struct {
	Server       ServerConfig       // HTTP server configuration
	Postgres     PostgresConfig     // PostgreSQL connection settings
	AlphaVantage AlphaVantageConfig // External market-data API settings
	WatchList    WatchListConfig    // Watch list input limits
}

// ServerConfig holds HTTP server settings.
//
// RequestTimeout wraps every request context, including the outbound
// market-data calls, so it takes precedence over AlphaVantageConfig.Timeout.
// validateConfig rejects a RequestTimeout that is not longer than it.
type ServerConfig struct {
	Port           string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout time.Duration // Deadline attached to every request context
	RateLimit      int           // Max requests per client IP per RateWindow
	RateWindow     time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AlphaVantageConfig describes how the intraday time-series endpoint is reached.
//
// InsecureSkipVerify defaults to true: certificate validation is disabled for
// outbound market-data calls unless explicitly turned on.
//
// PartialResults switches the aggregator from failing the whole batch on a single
// transport failure to dropping only the failed symbol.
type AlphaVantageConfig struct {
	APIKey             string
	BaseURL            string
	Function           string
	Interval           string
	InsecureSkipVerify bool
	Timeout            time.Duration
	MaxConcurrency     int
	PartialResults     bool
}

// WatchListConfig bounds the symbols a user can submit in one request.
type WatchListConfig struct {
	MaxSymbols int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() terminates the app.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "40s")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "stock_monitor")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("ALPHAVANTAGE_BASE_URL", "https://www.alphavantage.co/query")
	viper.SetDefault("ALPHAVANTAGE_FUNCTION", "TIME_SERIES_INTRADAY")
	viper.SetDefault("ALPHAVANTAGE_INTERVAL", "5min")
	viper.SetDefault("ALPHAVANTAGE_INSECURE_SKIP_VERIFY", true)
	viper.SetDefault("ALPHAVANTAGE_TIMEOUT", "30s")
	viper.SetDefault("ALPHAVANTAGE_MAX_CONCURRENCY", 5)
	viper.SetDefault("ALPHAVANTAGE_PARTIAL_RESULTS", false)

	viper.SetDefault("WATCHLIST_MAX_SYMBOLS", 5)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimit:      viper.GetInt("RATE_LIMIT_REQUESTS"),
			RateWindow:     viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		AlphaVantage: AlphaVantageConfig{
			APIKey:             viper.GetString("ALPHAVANTAGE_API_KEY"),
			BaseURL:            viper.GetString("ALPHAVANTAGE_BASE_URL"),
			Function:           viper.GetString("ALPHAVANTAGE_FUNCTION"),
			Interval:           viper.GetString("ALPHAVANTAGE_INTERVAL"),
			InsecureSkipVerify: viper.GetBool("ALPHAVANTAGE_INSECURE_SKIP_VERIFY"),
			Timeout:            viper.GetDuration("ALPHAVANTAGE_TIMEOUT"),
			MaxConcurrency:     viper.GetInt("ALPHAVANTAGE_MAX_CONCURRENCY"),
			PartialResults:     viper.GetBool("ALPHAVANTAGE_PARTIAL_RESULTS"),
		},
		WatchList: WatchListConfig{
			MaxSymbols: viper.GetInt("WATCHLIST_MAX_SYMBOLS"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN renders the connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.AlphaVantage.APIKey == "" {
		missing = append(missing, "ALPHAVANTAGE_API_KEY")
	}
	if AppConfig.AlphaVantage.BaseURL == "" {
		missing = append(missing, "ALPHAVANTAGE_BASE_URL")
	}
	if AppConfig.AlphaVantage.Interval == "" {
		missing = append(missing, "ALPHAVANTAGE_INTERVAL")
	}
	if AppConfig.WatchList.MaxSymbols <= 0 {
		missing = append(missing, "WATCHLIST_MAX_SYMBOLS")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}

	if err := checkTimeouts(AppConfig); err != nil {
		log.Fatalf("invalid configuration: %v\n", err)
	}
}

// checkTimeouts makes sure the upstream timeout can fire before the request deadline.
func checkTimeouts(cfg Config) error {
	req, upstream := cfg.Server.RequestTimeout, cfg.AlphaVantage.Timeout
	if req > 0 && upstream > 0 && upstream >= req {
		return fmt.Errorf("REQUEST_TIMEOUT (%s) must be longer than ALPHAVANTAGE_TIMEOUT (%s)", req, upstream)
	}
	return nil
}
