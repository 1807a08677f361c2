package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient(100)
	defer c.Close()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, err := c.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
		val, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), val)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "gone", []byte("v"), time.Minute))
		require.NoError(t, c.Delete(ctx, "gone"))
		_, err := c.Get(ctx, "gone")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("expired entry misses", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "stale", []byte("v"), -time.Second))
		_, err := c.Get(ctx, "stale")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}

func TestMemoryClient_EvictsAtCapacity(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient(2)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), 2*time.Minute))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), 3*time.Minute))

	// "a" had the earliest expiration and must be the eviction victim.
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	val, err := c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestResponseKey(t *testing.T) {
	assert.Equal(t, "chat:video:hva koster det", ResponseKey("hva koster det", "video"))
	assert.Equal(t, "chat::hva koster det", ResponseKey("hva koster det", ""))
}
