package exercises

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const listCacheKey = "exercises::list"

// Cache keeps the merged catalog list in redis for a short while, so
// repeated catalog reads from the app do not hit postgres every time.
type Cache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewCache(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// GetList returns the cached merged list, or (nil, nil) on cache miss.
func (c *Cache) GetList(ctx context.Context) ([]string, error) {
	cmd := c.redisClient.Get(ctx, listCacheKey)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	if err := json.Unmarshal([]byte(cmd.Val()), &names); err != nil {
		return nil, fmt.Errorf("unmarshal cached list: %w", err)
	}
	return names, nil
}

func (c *Cache) SetList(ctx context.Context, names []string) error {
	namesJson, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("marshal list: %w", err)
	}
	return c.redisClient.Set(ctx, listCacheKey, namesJson, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	return c.redisClient.Del(ctx, listCacheKey).Err()
}
