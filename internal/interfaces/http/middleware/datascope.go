package middleware

import (
	"github.com/eyedist/backend/internal/infrastructure/persistence/datascope"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DataScope puts the caller's visibility scope into the request context,
// where the repositories pick it up. It runs after JWTAuth. Requests
// without claims get no scope, and scoped queries then match nothing.
func DataScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetJWTUserID(c)
		if userID != uuid.Nil {
			scope := datascope.ForUser(userID, GetJWTRole(c))
			c.Request = c.Request.WithContext(datascope.WithScope(c.Request.Context(), scope))
		}
		c.Next()
	}
}
