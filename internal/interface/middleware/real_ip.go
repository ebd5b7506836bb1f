package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP stores the client address under "real_ip". Forwarding headers
// (CF-Connecting-IP, then the left-most X-Forwarded-For entry) are only
// honoured when trustHeaders is set, i.e. when running behind a proxy.
func RealIP(trustHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.RemoteIP()
		if trustHeaders {
			if fwd := forwardedIP(c); fwd != "" {
				ip = fwd
			} else {
				ip = c.ClientIP()
			}
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}

func forwardedIP(c *gin.Context) string {
	if ip := net.ParseIP(strings.TrimSpace(c.GetHeader("CF-Connecting-IP"))); ip != nil {
		return ip.String()
	}
	first, _, _ := strings.Cut(c.GetHeader("X-Forwarded-For"), ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}

func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
