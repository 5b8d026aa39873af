package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIPMiddleware resolves the real client IP behind proxies and stores it
// in the context for logging.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
			first := strings.TrimSpace(strings.Split(fwd, ",")[0])
			if net.ParseIP(first) != nil {
				ip = first
			}
		}

		c.Set("client_ip", ip)
		c.Next()
	}
}
