package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksrlabs/resource-booking/internal/models"
)

// RequireRole gates a route group to the given roles. Must run after
// AuthMiddleware has populated the context.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := c.Get(ContextUserRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
			return
		}

		if _, ok := allowed[role.(string)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
			return
		}

		c.Next()
	}
}
