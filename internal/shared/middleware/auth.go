package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"commission-backend/internal/shared"
	"commission-backend/internal/shared/response"
	"commission-backend/pkg/jwt"
)

const actorKey = "actor"

// AuthMiddleware validates the bearer token and stores the request actor
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Read token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify and parse JWT
		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		// 4. Store the actor for handlers to pass into services
		c.Set(actorKey, shared.Actor{
			UserID:   userID,
			Username: claims.Username,
			IsAdmin:  claims.IsAdmin,
		})

		c.Next()
	}
}

// ActorFromContext returns the authenticated actor set by AuthMiddleware
func ActorFromContext(c *gin.Context) (shared.Actor, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return shared.Actor{}, false
	}

	actor, ok := value.(shared.Actor)
	return actor, ok
}
