package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys set by this package, so no
// other package can collide with them.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard
// context, falling back to the default logger.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware. The boolean is false when the request is unauthenticated.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
