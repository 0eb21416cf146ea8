package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sahiljoster32/stock-monitor-backend/internal/logger"
)

// UserIDKey is the Gin context key holding the authenticated user's id.
const UserIDKey = "user_id"

const (
	msgNoCredentials = "Authentication credentials were not provided."
	msgInvalidToken  = "Invalid token."
	msgBadHeader     = "Invalid token header."
)

// ErrUnauthenticated is attached to the context when TokenAuth rejects a request.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authenticator resolves a token key to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int64, error)
}

// TokenAuth requires an "Authorization: Token <key>" header ("Bearer <key>" is
// accepted too). The resolved user id is stored under UserIDKey.
//
// Missing or malformed credentials and unknown keys are answered with 401
// and a WWW-Authenticate challenge. Lookup failures other than an unknown key
// are answered with 500. invalidToken is the error auth returns for an unknown key.
func TokenAuth(auth Authenticator, invalidToken error) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			unauthorized(c, msgNoCredentials)
			return
		}

		scheme, key, found := strings.Cut(header, " ")
		key = strings.TrimSpace(key)
		if !found || key == "" || strings.ContainsAny(key, " \t") {
			unauthorized(c, msgBadHeader)
			return
		}
		if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
			unauthorized(c, msgNoCredentials)
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, invalidToken) {
				unauthorized(c, msgInvalidToken)
				return
			}
			logger.FromContext(c.Request.Context()).Error().Err(err).Msg("token lookup failed")
			AbortWithError(c, http.StatusInternalServerError, "Internal server error", err)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the id stored by TokenAuth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Token")
	AbortWithError(c, http.StatusUnauthorized, message, ErrUnauthenticated)
}
