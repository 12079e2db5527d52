package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skilllink/internal/domain/profile"
	"skilllink/internal/pkg/response"
)

// RequireRole ensures that the authenticated person has the given role.
func RequireRole(required profile.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in session")
			c.Abort()
			return
		}
		if s, _ := role.(string); profile.Role(s) != required {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireWorker guards the routes of a worker's own workspace.
func RequireWorker() gin.HandlerFunc {
	return RequireRole(profile.RoleWorker)
}
