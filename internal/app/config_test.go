package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APETRECHO_DATABASE_URL", "postgres://localhost:5432/apetrecho")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
	assert.Equal(t, "postgres://localhost:5432/apetrecho", cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, []string{"db/seed/coupons.json"}, cfg.CouponFiles)
	assert.Equal(t, 168*time.Hour, cfg.CartTTL)
	assert.Equal(t, "99", cfg.Shipping.FreeAbove)
	assert.Equal(t, "15", cfg.Shipping.FlatFee)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 3*time.Second, cfg.Graceful.ReadinessDelay)
	assert.Equal(t, 15*time.Second, cfg.Graceful.ShutdownTimeout)
}

func TestLoadConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("APETRECHO_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}

func TestLoadConfig_PlatformEnv(t *testing.T) {
	t.Setenv("APETRECHO_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "postgres://railway:5432/app")
	t.Setenv("REDIS_URL", "redis://railway:6379")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://railway:5432/app", cfg.DatabaseURL)
	assert.Equal(t, "redis://railway:6379", cfg.RedisURL)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APETRECHO_DATABASE_URL", "postgres://localhost:5432/apetrecho")
	t.Setenv("APETRECHO_ADDR", "127.0.0.1:3000")
	t.Setenv("APETRECHO_SHIPPING_FREE_ABOVE", "150")
	t.Setenv("APETRECHO_CART_TTL", "24h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.Addr)
	assert.Equal(t, "150", cfg.Shipping.FreeAbove)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL)
}

func TestShippingConfig_Policy(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		policy, err := ShippingConfig{FreeAbove: "99", FlatFee: "15.50"}.Policy()
		require.NoError(t, err)
		assert.Equal(t, "99", policy.FreeAbove.String())
		assert.Equal(t, "15.5", policy.FlatFee.String())
	})

	t.Run("bad free-above", func(t *testing.T) {
		_, err := ShippingConfig{FreeAbove: "free", FlatFee: "15"}.Policy()
		require.Error(t, err)
	})

	t.Run("bad flat-fee", func(t *testing.T) {
		_, err := ShippingConfig{FreeAbove: "99", FlatFee: ""}.Policy()
		require.Error(t, err)
	})
}
