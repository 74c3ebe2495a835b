package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.Equal(t, "https://vpnapi.io", cfg.VPNAPI.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.VPNAPI.Timeout)
	assert.Empty(t, cfg.Kafka.Brokers, "event publishing is off unless brokers are set")
	assert.Equal(t, "integrity-logs", cfg.Kafka.Topic)
	assert.Empty(t, cfg.WhitelistedCountries)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DEVICEGATE_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://other:5432/db")
	t.Setenv("REDIS_POOL_SIZE", "50")
	t.Setenv("VPNAPI_KEY", "secret")
	t.Setenv("VPNAPI_TIMEOUT", "250ms")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")
	t.Setenv("WHITELISTED_COUNTRIES", "ES,FR, DE,")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://other:5432/db", cfg.DatabaseURL)
	assert.Equal(t, 50, cfg.Redis.PoolSize)
	assert.Equal(t, "secret", cfg.VPNAPI.Key)
	assert.Equal(t, 250*time.Millisecond, cfg.VPNAPI.Timeout)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"ES", "FR", "DE"}, cfg.WhitelistedCountries)
}

func TestFromEnvMalformedValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_POOL_SIZE", "many")
	t.Setenv("REDIS_DIAL_TIMEOUT", "soon")

	cfg := FromEnv()

	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
}
