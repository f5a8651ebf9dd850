package ratelimit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stagepass/internal/shared/utils/response"
	"stagepass/pkg/logger"
)

// classify maps a request path to its rate limit bucket.
func classify(c *gin.Context) RateLimitType {
	path := c.Request.URL.Path

	switch {
	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin
	case strings.Contains(path, "/payments"):
		return RateLimitTypePayment
	case strings.Contains(path, "/booking-sessions") || strings.Contains(path, "/bookings"):
		return RateLimitTypeBooking
	case strings.Contains(path, "/events") || strings.Contains(path, "/categories"):
		return RateLimitTypePublic
	default:
		return RateLimitTypeDefault
	}
}

// Middleware enforces per-IP rate limits and sets the usual X-RateLimit headers.
func Middleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limitType := classify(c)

		result, err := rl.Check(c.Request.Context(), ip, limitType)
		if err != nil {
			// Fail open on limiter backend errors
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), ip, c.Request.URL.Path)
			response.Error(c, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
