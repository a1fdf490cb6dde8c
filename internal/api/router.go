package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/nickg-hm/tracking-links/internal/api/handler"
	"github.com/nickg-hm/tracking-links/internal/api/middleware"
	"github.com/nickg-hm/tracking-links/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb and limiter are nil when rate limiting is disabled.
func NewRouter(links ports.LinkService, rdb *redis.Client, limiter middleware.Limiter, corsOrigin string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{corsOrigin},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	e.Use(echoprometheus.NewMiddleware("tracklinks"))

	// --- Link resolution ---
	linksHandler := handler.NewLinksHandler(links)
	apiGroup := e.Group("/api")
	if limiter != nil {
		apiGroup.Use(middleware.RateLimit(limiter, log))
	}
	apiGroup.POST("/links", linksHandler.Resolve)

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
