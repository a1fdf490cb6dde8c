package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSOrigin is the origin the public web form is served from.
	CORSOrigin string `env:"CORS_ORIGIN, default=https://nickg-hm.github.io"`

	// TemplatePolicy selects how templated aggregator links are handled:
	// "resolve_first" or "validate_raw_first".
	TemplatePolicy string `env:"TEMPLATE_POLICY, default=resolve_first"`

	Shopify   ShopifyConfig
	Track123  Track123Config
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ShopifyConfig struct {
	StoreDomain string `env:"SHOPIFY_STORE_DOMAIN"`
	AccessToken string `env:"SHOPIFY_ADMIN_ACCESS_TOKEN"`
}

type Track123Config struct {
	UUID   string `env:"TRACK123_UUID"`
	APIKey string `env:"TRACK123_API_KEY"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// RateLimitConfig throttles the public endpoint. Limit 0 disables limiting.
type RateLimitConfig struct {
	Limit  int           `env:"RATE_LIMIT,        default=0"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Validate checks the settings that would otherwise fail deep inside a
// request. Missing upstream credentials are a fatal configuration error.
func (c *Config) Validate() error {
	if c.Shopify.StoreDomain == "" || c.Shopify.AccessToken == "" {
		return errors.New("config: SHOPIFY_STORE_DOMAIN and SHOPIFY_ADMIN_ACCESS_TOKEN are required")
	}
	if c.Track123.UUID == "" || c.Track123.APIKey == "" {
		return errors.New("config: TRACK123_UUID and TRACK123_API_KEY are required")
	}
	return nil
}
