package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/LucasSiw/apetrecho-core/internal/domain/cart"
)

// Config holds the complete application configuration, loadable from
// environment variables (APETRECHO_ prefix), flags, or YAML config files.
type Config struct {
	Addr         string        `default:"0.0.0.0:8080" usage:"API server listen address"`
	DatabaseURL  string        `usage:"PostgreSQL connection URL (APETRECHO_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	RedisURL     string        `default:"" usage:"Redis URL for cart storage; empty keeps carts in process memory" flag:"redis-url"`
	CouponFiles  []string      `default:"db/seed/coupons.json" usage:"coupon registry files (JSON, .gz supported)" flag:"coupon-files"`
	APIKeyPepper string        `usage:"HMAC pepper for admin API key hashing (APETRECHO_API_KEY_PEPPER)" flag:"api-key-pepper"`
	CartTTL      time.Duration `default:"168h" usage:"how long untouched carts survive in Redis" flag:"cart-ttl"`
	Shipping     ShippingConfig
	RateLimit    RateLimitConfig
	CORS         CORSConfig
	Graceful     GracefulConfig
}

// ShippingConfig controls the flat-fee shipping rule.
type ShippingConfig struct {
	FreeAbove string `default:"99" usage:"subtotal above which shipping is free"`
	FlatFee   string `default:"15" usage:"flat shipping fee below the free threshold"`
}

// Policy parses the configured amounts into a cart.ShippingPolicy.
func (c ShippingConfig) Policy() (cart.ShippingPolicy, error) {
	freeAbove, err := decimal.NewFromString(c.FreeAbove)
	if err != nil {
		return cart.ShippingPolicy{}, errors.Wrap(err, "parse shipping free-above")
	}
	flatFee, err := decimal.NewFromString(c.FlatFee)
	if err != nil {
		return cart.ShippingPolicy{}, errors.Wrap(err, "parse shipping flat-fee")
	}
	return cart.ShippingPolicy{FreeAbove: freeAbove, FlatFee: flatFee}, nil
}

// RateLimitConfig controls the per-client rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "APETRECHO",
		Files:     []string{"config.yaml", "/etc/apetrecho/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required: set APETRECHO_DATABASE_URL or DATABASE_URL")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like DATABASE_URL and PORT
// to the application's APETRECHO_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		if v := os.Getenv("DATABASE_URL"); v != "" {
			c.DatabaseURL = v
		}
	}
	if c.RedisURL == "" {
		if v := os.Getenv("REDIS_URL"); v != "" {
			c.RedisURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
