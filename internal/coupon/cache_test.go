package coupon

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	stored := Coupon{Code: "HEMAT10", Kind: KindPercentage, Value: 10, Advanced: &Advanced{MaxDiscount: moneyPtr(200)}}
	require.NoError(t, cache.Set(ctx, stored))

	var got Coupon
	hit, err := cache.Get(ctx, "hemat10", &got)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, stored, got)
}

func TestCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t)
	var got Coupon
	hit, err := cache.Get(context.Background(), "ABSENT", &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, Coupon{Code: "HEMAT10", Kind: KindPercentage, Value: 10}))
	require.NoError(t, cache.Invalidate(ctx, "HEMAT10"))

	var got Coupon
	hit, err := cache.Get(ctx, "HEMAT10", &got)
	require.NoError(t, err)
	require.False(t, hit)
}

func TestCacheNilDegradesToNoop(t *testing.T) {
	var cache *Cache
	var got Coupon
	hit, err := cache.Get(context.Background(), "HEMAT10", &got)
	require.NoError(t, err)
	require.False(t, hit)
	require.NoError(t, cache.Set(context.Background(), Coupon{Code: "HEMAT10"}))
	require.NoError(t, cache.Invalidate(context.Background(), "HEMAT10"))
}
