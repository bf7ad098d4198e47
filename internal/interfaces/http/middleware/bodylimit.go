package middleware

import (
	"net/http"

	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// BodyLimit rejects requests whose body exceeds maxBytes. Bodies without a
// Content-Length are cut off while reading.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeTooLarge, "Request body exceeds maximum allowed size")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
