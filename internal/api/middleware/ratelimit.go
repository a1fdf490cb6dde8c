package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nickg-hm/tracking-links/internal/api/metrics"
)

// Limiter gates requests by client key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects clients that exceed the limiter's window with 429.
// Limiter errors fail open: an unreachable backing store must not take the
// public endpoint down with it.
func RateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable")
			}
			if !allowed {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
