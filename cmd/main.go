package main

//
//  @title           stock-monitor API
//  @version         1.0
//  @description     Watch-list backend: user accounts plus intraday stock data from Alpha Vantage.
//  @termsOfService  https://github.com/sahiljoster32/stock-monitor-backend
//  @contact.name    API Support
//  @contact.url     https://github.com/sahiljoster32/stock-monitor-backend
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @securityDefinitions.apikey  TokenAuth
//  @in                          header
//  @name                        Authorization
//  @description                 "Token <key>" as returned by /api/v1/users/login
//
//  @tag.name        users
//  @tag.description Registration and login
//
//  @tag.name        watch-list
//  @tag.description Symbols data and the saved watch list
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goose "github.com/pressly/goose/v3"

	"github.com/sahiljoster32/stock-monitor-backend/config"
	"github.com/sahiljoster32/stock-monitor-backend/db"
	_ "github.com/sahiljoster32/stock-monitor-backend/docs" // swagger docs
	"github.com/sahiljoster32/stock-monitor-backend/internal/app"
	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// Symbols-data requests wait on several upstream calls.
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, drains the HTTP server and then
// runs cleanup to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// migrate applies goose commands with the migrations embedded in the binary.
//
// Supported commands: up, down, status.
func migrate(conn *sql.DB, command string) error {
	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.Up(conn, db.MigrationsDir)
	case "down":
		return goose.Down(conn, db.MigrationsDir)
	case "status":
		return goose.Status(conn, db.MigrationsDir)
	default:
		return fmt.Errorf("unknown migrate command %q (want up, down or status)", command)
	}
}

// main is the entry point of the stock-monitor backend.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API.
//   - migrate: Applies the embedded SQL migrations and exits.
//
// Flags:
//   - --mode:    Execution mode ("api" or "migrate"). Default: "api".
//   - --migrate: goose command for migrate mode ("up", "down", "status"). Default: "up".
//   - --port:    Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	mode := flag.String("mode", "api", "Mode: api or migrate")
	migrateCmd := flag.String("migrate", "up", "Migrate command: up, down or status")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "migrate":
		logger.L().Info().Str("command", *migrateCmd).Msg("running migrations")

		conn, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = conn.Close() }()

		if err := migrate(conn, *migrateCmd); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}
		logger.L().Info().Msg("migrations completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
