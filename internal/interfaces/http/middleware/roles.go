package middleware

import (
	"net/http"
	"slices"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRoles lets the request through only when the caller has one of roles
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !slices.Contains(roles, role) {
			logger.L(c.Request.Context()).Warn("Role not allowed",
				zap.String("role", role.String()),
				zap.String("path", c.FullPath()))
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "You do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

// RequireAdmin is RequireRoles(admin)
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(identity.RoleAdmin)
}

// RequireReviewer admits the roles that see every row (admin, manager)
func RequireReviewer() gin.HandlerFunc {
	return RequireRoles(identity.RoleAdmin, identity.RoleManager)
}
