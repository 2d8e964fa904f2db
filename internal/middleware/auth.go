// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// PermissionRequired gates a route on a single permission name. The
// effective permission set is recomputed from profile membership on
// every request; revoking a profile takes effect immediately.
func PermissionRequired(authService *services.AuthService, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, ok := utils.GetUsernameFromContext(c)
		if !ok {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		allowed, err := authService.HasPermission(username, permission)
		if err != nil {
			utils.ForbiddenResponse(c, "Access denied")
			c.Abort()
			return
		}
		if !allowed {
			utils.ForbiddenResponse(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
