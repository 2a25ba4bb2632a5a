package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskboard/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const bearerScheme = "bearer "

// Context keys under which the authenticated identity is stored.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// AuthMiddleware creates a Gin middleware that guards every protected route.
// It extracts the bearer token, verifies it, and attaches the decoded identity
// to the request context. The middleware has no knowledge of route-specific
// business logic.
func AuthMiddleware(tokens *token.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		// Explicit scheme check rather than best-effort stripping: anything
		// that is not "Bearer <token>" is rejected.
		if len(authHeader) <= len(bearerScheme) ||
			!strings.EqualFold(authHeader[:len(bearerScheme)], bearerScheme) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(authHeader[len(bearerScheme):])

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				c.Abort()
				return
			}
			logger.Debug("Rejected invalid token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}
