package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/dto"
	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
)

// ErrorHandler renders errors attached with c.Error that no handler answered.
//
// Handlers that already wrote a response are left alone; otherwise the last
// error is logged and a 500 dto.ErrorResponse is returned.
//
// Usage:
//
//	router.Use(middleware.ErrorHandler)
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	logger.FromContext(c.Request.Context()).Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Msg("unhandled request error")

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError stops the chain with a JSON dto.ErrorResponse.
// err is attached to the context for logging and may be nil.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
