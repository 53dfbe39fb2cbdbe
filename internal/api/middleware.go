package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fernwehlab/tour-booking-backend/internal/auth"
	"github.com/fernwehlab/tour-booking-backend/internal/user"
)

// RequireRole gates a route on the role carried in the access token.
// It MUST run after auth.AuthRequired. Admins pass every role gate.
func RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := auth.GetUserRole(c)
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if got != string(role) && got != string(user.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: " + string(role) + " access required"})
			return
		}

		c.Next()
	}
}

// RequireAdmin restricts a route to admins.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin)
}

// RequireGuide restricts a route to guides (and admins).
func RequireGuide() gin.HandlerFunc {
	return RequireRole(user.RoleGuide)
}
