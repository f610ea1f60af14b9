package coupon

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a read-through Redis cache for coupon records. A nil cache or
// nil client degrades to a no-op so the service works without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a coupon cache with the given TTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(code string) string {
	return "coupon:code:" + strings.ToUpper(strings.TrimSpace(code))
}

// Get reports whether a cached record exists for the code and decodes it.
func (c *Cache) Get(ctx context.Context, code string, dst *Coupon) (bool, error) {
	if c == nil || c.client == nil || code == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, cacheKey(code)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the coupon record under its code with the configured TTL.
func (c *Cache) Set(ctx context.Context, coupon Coupon) error {
	if c == nil || c.client == nil || coupon.Code == "" || c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(coupon)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(coupon.Code), data, c.ttl).Err()
}

// Invalidate drops the cached record after an admin write.
func (c *Cache) Invalidate(ctx context.Context, code string) error {
	if c == nil || c.client == nil || code == "" {
		return nil
	}
	return c.client.Del(ctx, cacheKey(code)).Err()
}
