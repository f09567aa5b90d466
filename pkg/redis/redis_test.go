package redis

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Addr(t *testing.T) {
	cfg := &Config{Host: "cache.internal", Port: "6380"}
	assert.Equal(t, "cache.internal:6380", cfg.Addr())

	cfg = &Config{Host: "::1", Port: "6379"}
	assert.Equal(t, "[::1]:6379", cfg.Addr())
}

func TestNewRedisCache_NilConfig(t *testing.T) {
	cache, err := NewRedisCache(nil)
	assert.Error(t, err)
	assert.Nil(t, cache)
}

func TestNewRedisCache_Live(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("Skipping Redis test. Set REDIS_HOST to run it")
	}

	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	cache, err := NewRedisCache(&Config{Host: host, Port: port, Password: os.Getenv("REDIS_PASSWORD")})
	require.NoError(t, err)
	defer cache.Close()

	assert.NoError(t, cache.Ping(context.Background()))
	assert.NotNil(t, cache.GetClient())
}
