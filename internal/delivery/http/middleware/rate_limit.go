package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware applies a coarse per-IP budget across every route,
// ahead of the stricter per-endpoint limiter inside the contact flow. A
// limiter failure rejects the request: an unavailable gate must not become
// an implicit allow.
func RateLimitMiddleware(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Check(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Log.Error("global rate limiter unavailable", "error", err, "ip", c.ClientIP())
			response.Error(c, http.StatusInternalServerError, "Internal server error")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", res.ResetAt.Format(time.RFC3339))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(res.RetryAfter))
			logger.Log.Warn("rate limit exceeded",
				"ip", c.ClientIP(),
				"path", c.FullPath(),
				"retry_after", res.RetryAfter)
			response.RateLimited(c, http.StatusTooManyRequests,
				"Too many requests. Please try again later.", res.RetryAfter)
			c.Abort()
			return
		}

		c.Next()
	}
}
