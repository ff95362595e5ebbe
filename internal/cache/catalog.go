package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const catalogPrefix = "catalog:"

// Catalog is a read-through cache for the service listings. Every
// method is a no-op when redis is not configured, so the API runs the
// same way with or without it.
type Catalog struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCatalog(redisURL string) *Catalog {
	if redisURL == "" {
		return &Catalog{}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, cache disabled: %v", err)
		return &Catalog{}
	}

	return &Catalog{
		rdb: redis.NewClient(opt),
		ttl: 5 * time.Minute,
	}
}

func (c *Catalog) Get(ctx context.Context, key string, dest any) bool {
	if c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, catalogPrefix+key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

func (c *Catalog) Set(ctx context.Context, key string, v any) {
	if c.rdb == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, catalogPrefix+key, raw, c.ttl).Err(); err != nil {
		log.Printf("cache set failed: %v", err)
	}
}

// Invalidate drops every catalog page after a service mutation.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}

	keys, err := c.rdb.Keys(ctx, catalogPrefix+"*").Result()
	if err != nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidate failed: %v", err)
	}
}
