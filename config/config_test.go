package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseDurationWithDays(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":  7 * 24 * time.Hour,
		"1d":  24 * time.Hour,
		"15m": 15 * time.Minute,
		"1h":  time.Hour,
		"bad": 0,
		"xd":  0,
		"":    0,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseDurationWithDays(in), "input %q", in)
	}
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitAndTrim(" a:9092 , ,b:9092"))
}

func setRequired(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ISSUER", "shop-service")
	t.Setenv("JWT_AUDIENCE", "shop-clients")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "shop")
	t.Setenv("DB_NAME", "shop")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("REDIS_ENABLED", "")

	cfg := Load(zap.NewNop())
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "50051", cfg.GRPCPort)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExp)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "orders.events", cfg.Kafka.OrdersTopic)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_EXP", "2h")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load(zap.NewNop())
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessExp)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
}

func TestGetEnv_MissingPanics(t *testing.T) {
	assert.Panics(t, func() { getEnv("SHOP_SERVICE_SURELY_MISSING_KEY", zap.NewNop()) })

	t.Setenv("SHOP_SERVICE_EMPTY_KEY", "")
	assert.NotPanics(t, func() { getEnv("SHOP_SERVICE_EMPTY_KEY", zap.NewNop()) })
	assert.Equal(t, "fallback", getEnvDefault("SHOP_SERVICE_EMPTY_KEY", "fallback"))
}
