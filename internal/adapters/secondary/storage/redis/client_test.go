package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Npcprogramming/Taro2.0/internal/ports/cache"
)

func setupRedis(t *testing.T) (*Client, *redis.Client) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("warning: failed to terminate redis container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	c := NewClient(rdb, "tarot:")
	t.Cleanup(func() { _ = c.Close() })
	return c, rdb
}

func TestClient_SetGetDelete(t *testing.T) {
	c, rdb := setupRedis(t)
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	_, err := c.Get(ctx, "session:1")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "session:1", `{"onboarding":1}`, time.Minute))

	val, err := c.Get(ctx, "session:1")
	require.NoError(t, err)
	assert.Equal(t, `{"onboarding":1}`, val)

	// ключ хранится под префиксом
	raw, err := rdb.Get(ctx, "tarot:session:1").Result()
	require.NoError(t, err)
	assert.Equal(t, val, raw)

	ttl, err := rdb.TTL(ctx, "tarot:session:1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	exists, err := c.Exists(ctx, "session:1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "session:1"))
	exists, err = c.Exists(ctx, "session:1")
	require.NoError(t, err)
	assert.False(t, exists)
}
