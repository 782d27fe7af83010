package middleware

import (
	"fmt"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"marketplace/internal/infrastructure/ratelimit"
	"marketplace/pkg/errors"
	"marketplace/pkg/logger"
	"marketplace/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
	enabled bool
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter, enabled bool) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		enabled: enabled,
	}
}

// Limit throttles action per client IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.enabled {
				return next(c)
			}

			ip := c.RealIP()
			allowed, wait := m.limiter.Allow(ip, action)
			if !allowed {
				retryAfter := int(math.Ceil(wait.Seconds()))
				logger.Warn("Rate limit hit for %s on %s (retry in %ds)", ip, action, retryAfter)
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return response.Error(c, errors.TooManyRequests(fmt.Sprintf("Too many requests. Please try again in %d seconds.", retryAfter)))
			}

			return next(c)
		}
	}
}
