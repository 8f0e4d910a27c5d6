package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Npcprogramming/Taro2.0/internal/ports/cache"
)

func TestCache_TTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", 0))

	val, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", val)

	now = now.Add(time.Minute)

	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
	exists, _ := c.Exists(ctx, "a")
	assert.False(t, exists)

	val, err = c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", val)

	require.NoError(t, c.Delete(ctx, "b"))
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
