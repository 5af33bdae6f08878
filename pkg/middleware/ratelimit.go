package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	appctx "github.com/Ramsey-B/clover/pkg/context"
	"github.com/Ramsey-B/clover/pkg/redis"
)

// RateLimit throttles mutating dashboard requests per caller. The key is the
// authenticated user when present, otherwise the remote IP. Limiter errors
// fail open so a Redis outage does not take the forms down.
func RateLimit(limiter *redis.RateLimiter, logger ectologger.Logger, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			key := appctx.GetUserID(ctx)
			if key == "" {
				key = c.RealIP()
			}

			result, err := limiter.Allow(ctx, key, limit, window)
			if err != nil {
				logger.WithContext(ctx).WithError(err).Warn("rate limiter unavailable, allowing request")
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

			if !result.Allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(result.RetryIn.Seconds())+1))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}

			return next(c)
		}
	}
}
