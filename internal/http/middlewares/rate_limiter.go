package middlewares

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/portfoliohub/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

type RateLimiter struct {
	store  ratelimit.Store
	limit  int
	window time.Duration

	// OnReject runs for every 429; wired to metrics by the router.
	OnReject func()
}

func NewRateLimiter(store ratelimit.Store, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

// RateLimiterMiddleware counts the request first and rejects once the count exceeds the limit.
func (rl *RateLimiter) RateLimiterMiddleware(keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		if key == "" {
			key = clientIP(c)
		}

		count, resetAt, err := rl.store.Incr(c.Request.Context(), key, rl.window)
		if err != nil {
			// fail open
			slog.Default().WarnContext(c.Request.Context(), "rate limiter unavailable", "err", err)
			c.Next()
			return
		}

		if count > rl.limit {
			retryAfter := int(time.Until(resetAt).Round(time.Second).Seconds())
			if retryAfter < 0 {
				retryAfter = 0
			}

			if rl.OnReject != nil {
				rl.OnReject()
			}

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			abortJSON(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, please try again later.")
			return
		}

		c.Next()
	}
}

func KeyByIP(c *gin.Context) string {
	return clientIP(c)
}

func clientIP(c *gin.Context) string {
	// Gin's ClientIP respects X-Forwarded-For / X-Real-IP if configured.
	ip := c.ClientIP()

	host, _, err := net.SplitHostPort(ip)
	if err == nil && host != "" {
		return host
	}

	return ip
}
