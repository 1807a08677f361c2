package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediekroken/digisvar/internal/cache"
)

func TestRedisClient(t *testing.T) {
	setup := SetupRedis(t)
	ctx := context.Background()

	client, err := cache.NewRedisClient(cache.RedisConfig{Addr: setup.Addr})
	require.NoError(t, err)
	defer client.Close()

	t.Run("miss on unknown key", func(t *testing.T) {
		_, err := client.Get(ctx, "nope")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("set then get", func(t *testing.T) {
		key := cache.ResponseKey("hva koster det", "video")
		require.NoError(t, client.Set(ctx, key, []byte(`{"type":"answer"}`), time.Minute))

		val, err := client.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"type":"answer"}`), val)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "gone", []byte("v"), time.Minute))
		require.NoError(t, client.Delete(ctx, "gone"))
		_, err := client.Get(ctx, "gone")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})

	t.Run("ttl expires entries", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "kort", []byte("v"), time.Second))
		time.Sleep(1500 * time.Millisecond)
		_, err := client.Get(ctx, "kort")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	})
}
