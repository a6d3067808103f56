package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"commission-backend/internal/shared/response"
)

// AdminMiddleware checks the authenticated actor has the admin flag
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok || !actor.IsAdmin {
			response.Error(c, http.StatusForbidden, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
