package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling labels CPU samples with the route and method, so profiles can
// be filtered per endpoint in Pyroscope
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || skipped(route, []string{"/health", "/api/v1/health"}, []string{"/swagger"}) {
			c.Next()
			return
		}
		labels := pyroscope.Labels("route", route, "method", c.Request.Method)
		pyroscope.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
