package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lawdesk/internal/auth"
	"github.com/lalith-99/lawdesk/internal/models"
)

// ContextKeyActor is the gin.Context key holding the authenticated models.Actor.
const ContextKeyActor = "actor"

func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// AuthMiddleware validates the bearer token and stores the actor on the
// context. Requests without a valid token never reach the handler.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortJSON(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortJSON(c, http.StatusUnauthorized, "Invalid authorization format, expected: Bearer <token>")
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextKeyActor, claims.Actor())
		c.Next()
	}
}

// GetActor returns the authenticated actor, if any.
func GetActor(c *gin.Context) (models.Actor, bool) {
	val, exists := c.Get(ContextKeyActor)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := val.(models.Actor)
	return actor, ok
}
