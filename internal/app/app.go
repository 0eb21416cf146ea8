package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/sahiljoster32/stock-monitor-backend/config"
	"github.com/sahiljoster32/stock-monitor-backend/internal/api"
	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
	"github.com/sahiljoster32/stock-monitor-backend/internal/marketdata"
	"github.com/sahiljoster32/stock-monitor-backend/internal/metrics"
	"github.com/sahiljoster32/stock-monitor-backend/internal/middleware"
	"github.com/sahiljoster32/stock-monitor-backend/internal/service"
	"github.com/sahiljoster32/stock-monitor-backend/internal/storage"
)

// marketDataOptions is an indirection for tests that point the client at an httptest server.
var marketDataOptions []marketdata.Option

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Builds the repositories (users, tokens, watch lists).
//   - Builds the market-data client; its HTTP transport is created once here
//     and shared by every request.
//   - Wires the aggregator, watch list and auth services.
//   - Configures the Gin router with all API routes, metrics and the rate limiter.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// ─── Storage ──────────────────────────────────
	users := storage.NewUsersRepository(db)
	tokens := storage.NewTokensRepository(db)
	lists := storage.NewWatchListRepository(db)

	// ─── Market data + services ───────────────────
	recorder := metrics.New()
	client := marketdata.NewClient(cfg.AlphaVantage, marketDataOptions...)
	aggregator := service.NewSymbolsAggregator(client, recorder, cfg.AlphaVantage.Interval, cfg.AlphaVantage.PartialResults)
	watchList := service.NewWatchListService(aggregator, lists, cfg.AlphaVantage.Interval)
	auth := service.NewAuthService(users, tokens, lists)

	// ─── HTTP ─────────────────────────────────────
	router := api.NewRouter(api.RouterDeps{
		Users:          api.NewUsersHandler(auth),
		WatchList:      api.NewWatchListHandler(watchList, cfg.WatchList.MaxSymbols),
		Auth:           middleware.TokenAuth(auth, service.ErrInvalidToken),
		Metrics:        recorder,
		RateLimiter:    middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow),
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	healthHandler := api.NewHealthHandler(db.PingContext)
	healthHandler.Register(router)

	logger.L().Info().
		Str("market_data_url", cfg.AlphaVantage.BaseURL).
		Str("interval", cfg.AlphaVantage.Interval).
		Bool("tls_verify", !cfg.AlphaVantage.InsecureSkipVerify).
		Bool("partial_results", cfg.AlphaVantage.PartialResults).
		Int("max_symbols", cfg.WatchList.MaxSymbols).
		Msg("application wired")

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
