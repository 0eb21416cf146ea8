package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sahiljoster32/stock-monitor-backend/internal/metrics"
	"github.com/sahiljoster32/stock-monitor-backend/internal/middleware"
)

// RouterDeps carries everything NewRouter mounts.
type RouterDeps struct {
	Users     *UsersHandler
	WatchList *WatchListHandler

	// Auth guards the watch-list group (middleware.TokenAuth).
	Auth gin.HandlerFunc
	// Metrics, when set, instruments every request and serves /metrics.
	Metrics *metrics.Recorder
	// RateLimiter, when set, limits inbound requests per client IP.
	RateLimiter *middleware.RateLimiter

	// RequestTimeout bounds the whole request, outbound market-data calls included.
	RequestTimeout time.Duration
}

const defaultRequestTimeout = 40 * time.Second

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, Metrics, RateLimiter).
//   - Bounds each request's context with RequestTimeout (default 40s). The bound
//     also covers the outbound market-data calls made for the request, so it
//     must exceed ALPHAVANTAGE_TIMEOUT.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	)
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}

	// ─── Timeout ──────────────────────────────────
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger / Metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		users.POST("/register", deps.Users.Register)
		users.POST("/login", deps.Users.Login)

		var guard []gin.HandlerFunc
		if deps.Auth != nil {
			guard = append(guard, deps.Auth)
		}
		watchList := v1.Group("/watch-list", guard...)
		watchList.GET("", deps.WatchList.GetWatchList)
		watchList.POST("/symbols-data", deps.WatchList.FetchSymbolsData)
	}

	return router
}
