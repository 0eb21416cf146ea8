package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
)

// RequestLogger is a Gin middleware that writes one structured line per request.
//
// Fields: request_id, method, path, route, status, latency_ms, client_ip and,
// when the request was authenticated, user_id. 5xx responses are logged at
// error level, 4xx at warn, the rest at info.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		event := levelFor(status)
		if uid, ok := UserID(c); ok {
			event = event.Int64("user_id", uid)
		}
		event.
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func levelFor(status int) *zerolog.Event {
	switch {
	case status >= 500:
		return logger.L().Error()
	case status >= 400:
		return logger.L().Warn()
	default:
		return logger.L().Info()
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
