package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// AuthMiddleware validates the bearer token and scopes the request to the
// authenticated user. Every ledger call downstream reads the user ID from
// the context; the ledger itself never spans users.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID := claims.Subject
		if userID == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
