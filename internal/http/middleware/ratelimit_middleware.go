package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/draftly/domain"
)

// RateLimitMW wraps the dependencies for throttling middleware
type RateLimitMW struct {
	limiter domain.RateLimiter
}

// NewRateLimitMW creates the rate limit middleware
func NewRateLimitMW(limiter domain.RateLimiter) *RateLimitMW {
	return &RateLimitMW{limiter: limiter}
}

// Limit throttles requests under the given action name and policy. The
// bucket key is "<action>:<clientID>"; a rejected request gets a 429 with
// Retry-After seconds derived from the window reset time.
func (m *RateLimitMW) Limit(action string, policy domain.RateLimitPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := action + ":" + ClientIdentifier(c)

		result := m.limiter.Check(key, policy)
		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetTime).Seconds()) + 1
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ClientIdentifier derives the client identity for rate limiting: the
// trusted edge header first, then proxy headers in order, then the socket
// address. Clients with no identity share the "unknown" bucket.
func ClientIdentifier(c *gin.Context) string {
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}

	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		// First hop is the original client
		if first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0]); first != "" {
			return first
		}
	}

	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil && host != "" {
		return host
	}

	return "unknown"
}
