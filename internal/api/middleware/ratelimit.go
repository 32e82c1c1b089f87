package middleware

import (
	"net/http"
	"strconv"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimit bounds requests per client IP per minute using a Redis-backed
// sliding window. Fails open when Redis is unavailable so an outage never
// locks users out.
func RateLimit(rdb *redis.Client, perMinute int, log zerolog.Logger) echo.MiddlewareFunc {
	limiter := redis_rate.NewLimiter(rdb)
	limit := redis_rate.PerMinute(perMinute)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:ip:" + c.RealIP()
			res, err := limiter.Allow(c.Request().Context(), key, limit)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, failing open")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if res.Allowed == 0 {
				retryAfter := int(res.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
