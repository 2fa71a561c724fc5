package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadform/internal/pkg/response"
)

// RoleOperator may read the submission history.
const RoleOperator = "operator"

// RequireRole ensures that the authenticated caller has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		if r, _ := role.(string); r != requiredRole {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

// OperatorOnly middleware requires operator role
func OperatorOnly() gin.HandlerFunc {
	return RequireRole(RoleOperator)
}
