package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig controls access to the API documentation
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool
	// AllowedIPs may hold single addresses or CIDR ranges; empty allows all
	AllowedIPs []string
}

// SwaggerProtection guards the /swagger routes. A disabled UI answers 404.
// With RequireAuth the given JWT middleware must accept the request.
func SwaggerProtection(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) gin.HandlerFunc {
	var nets []*net.IPNet
	var ips []net.IP
	for _, s := range cfg.AllowedIPs {
		if strings.Contains(s, "/") {
			if _, n, err := net.ParseCIDR(s); err == nil {
				nets = append(nets, n)
			}
		} else if ip := net.ParseIP(s); ip != nil {
			ips = append(ips, ip)
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			abortWithError(c, http.StatusNotFound, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}
		if len(cfg.AllowedIPs) > 0 && !ipAllowed(net.ParseIP(c.ClientIP()), ips, nets) {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Access to API documentation is restricted")
			return
		}
		if cfg.RequireAuth && jwtMiddleware != nil {
			jwtMiddleware(c)
			if c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}

func ipAllowed(ip net.IP, ips []net.IP, nets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, a := range ips {
		if a.Equal(ip) {
			return true
		}
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
