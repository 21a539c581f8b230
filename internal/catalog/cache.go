package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"restaurant-ordering/internal/model"

	"github.com/redis/go-redis/v9"
)

// menuCacheKey holds the JSON-encoded full menu.
const menuCacheKey = "menu:items"

// redisCache implements Cache on Redis.
type redisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache creates a Cache storing the menu in Redis for ttl.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) GetMenu(ctx context.Context) ([]model.MenuItem, bool, error) {
	data, err := c.client.Get(ctx, menuCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read menu cache: %w", err)
	}

	var items []model.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode menu cache: %w", err)
	}

	return items, true, nil
}

func (c *redisCache) SetMenu(ctx context.Context, items []model.MenuItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode menu cache: %w", err)
	}

	if err := c.client.Set(ctx, menuCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write menu cache: %w", err)
	}
	return nil
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, menuCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate menu cache: %w", err)
	}
	return nil
}

// noopCache never holds anything. Used when Redis is disabled.
type noopCache struct{}

// NewNoopCache returns a Cache that always misses.
func NewNoopCache() Cache {
	return noopCache{}
}

func (noopCache) GetMenu(context.Context) ([]model.MenuItem, bool, error) { return nil, false, nil }
func (noopCache) SetMenu(context.Context, []model.MenuItem) error { return nil }
func (noopCache) Invalidate(context.Context) error { return nil }
