package factory

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/seabattle/internal/storage/memory"
	redisstorage "github.com/mcoot/seabattle/internal/storage/redis"
)

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Storage{}, app.Storage)
	assert.NoError(t, app.Close())
}

func TestNewRedis(t *testing.T) {
	mini := miniredis.RunT(t)
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &cfg})
	require.NoError(t, err)
	assert.IsType(t, &redisstorage.Storage{}, app.Storage)
	assert.NoError(t, app.Close())
}

func TestNewRedisWithoutConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.ErrorContains(t, err, "RedisConfig")
}

func TestNewRedisUnreachable(t *testing.T) {
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://127.0.0.1:1"

	_, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &cfg})
	assert.ErrorContains(t, err, "connecting to redis")
}

func TestNewUnknownStorage(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	assert.ErrorContains(t, err, "invalid storage type")
}
