package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP resolves the address the rate limiter keys on. The service
// runs behind a reverse proxy in every deployment, so the forwarding
// headers are consulted before the socket address, which would otherwise
// collapse every client into the proxy's IP and rate-limit them as one.
func getClientIP(c *gin.Context) string {
	// X-Forwarded-For accumulates one hop per proxy; the leftmost entry is
	// the original client.
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
		if first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}

	// Direct connection: strip the port from the socket address.
	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
