package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	_ "github.com/nickg-hm/tracking-links/docs"
	"github.com/nickg-hm/tracking-links/internal/api"
	apimiddleware "github.com/nickg-hm/tracking-links/internal/api/middleware"
	"github.com/nickg-hm/tracking-links/internal/core/domain"
	"github.com/nickg-hm/tracking-links/internal/core/service"
	"github.com/nickg-hm/tracking-links/internal/infrastructure/config"
	redisinfra "github.com/nickg-hm/tracking-links/internal/infrastructure/db/redis"
	"github.com/nickg-hm/tracking-links/internal/infrastructure/shopify"
	"github.com/nickg-hm/tracking-links/internal/infrastructure/track123"
	"github.com/nickg-hm/tracking-links/pkg/logger"
)

// @title        Tracking Links API
// @version      1.0
// @description  Resolves the single best publicly-browsable carrier tracking URL for a mail-order shipment.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orders := shopify.NewClient(shopify.Config{
		StoreDomain: cfg.Shopify.StoreDomain,
		AccessToken: cfg.Shopify.AccessToken,
	}, log)
	tracking := track123.NewClient(track123.Config{
		UUID:   cfg.Track123.UUID,
		APIKey: cfg.Track123.APIKey,
	}, log)

	linkService := service.NewLinkService(orders, tracking,
		domain.ParseTemplatePolicy(cfg.TemplatePolicy), log)

	// Redis backs only the rate limiter; skip it entirely when limiting is off.
	var rdb *goredis.Client
	var limiter apimiddleware.Limiter
	if cfg.RateLimit.Limit > 0 {
		var err error
		rdb, err = redisinfra.Connect(ctx, redisinfra.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		limiter = redisinfra.NewRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	e := api.NewRouter(linkService, rdb, limiter, cfg.CORSOrigin, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
