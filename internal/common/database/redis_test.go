// internal/common/database/redis_test.go
package database

import (
	"context"
	"testing"

	"insights-workers/internal/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	client := NewRedis(config.RedisConfig{Address: mr.Addr()})
	defer client.Close()

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, 10, client.Client.Options().PoolSize)
}

func TestNewRedis_PoolSizeFromConfig(t *testing.T) {
	client := NewRedis(config.RedisConfig{Address: "localhost:0", PoolSize: 4})
	defer client.Close()

	assert.Equal(t, 4, client.Client.Options().PoolSize)
	assert.Equal(t, 2, client.Client.Options().MinIdleConns)
}

func TestPing_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := NewRedis(config.RedisConfig{Address: addr})
	defer client.Close()

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping failed")
}

func TestClose_NilClient(t *testing.T) {
	assert.NoError(t, (&RedisClient{}).Close())
}
