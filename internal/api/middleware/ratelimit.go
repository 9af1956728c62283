package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamify/office-api/internal/api/metrics"
	"github.com/teamify/office-api/internal/core/domain"
	"github.com/teamify/office-api/internal/core/ports"
)

// LoginRateLimit caps login attempts per client IP within window. When the
// limiter backend is unreachable the request is let through and logged.
func LoginRateLimit(limiter ports.RateLimiter, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil || limit <= 0 {
				return next(c)
			}

			ok, err := limiter.Allow(c.Request().Context(), "login:"+c.RealIP(), limit, window)
			if err != nil {
				log.Warn().Err(err).Msg("login rate limiter unavailable")
				return next(c)
			}
			if !ok {
				metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
