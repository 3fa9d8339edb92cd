// README: Redis-backed display-name cache for hubs and venues.
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const nameTTL = time.Hour

// NameCache fronts the display-name lookups the transition paths hit on every
// request. Misses fall through to Postgres; renames invalidate.
type NameCache interface {
	GetName(ctx context.Context, kind, id string) (string, bool)
	SetName(ctx context.Context, kind, id, name string)
	Invalidate(ctx context.Context, kind, id string)
}

type RedisNameCache struct {
	redis *redis.Client
}

func NewRedisNameCache(client *redis.Client) *RedisNameCache {
	return &RedisNameCache{redis: client}
}

func (c *RedisNameCache) GetName(ctx context.Context, kind, id string) (string, bool) {
	val, err := c.redis.Get(ctx, nameKey(kind, id)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisNameCache) SetName(ctx context.Context, kind, id, name string) {
	// Cache errors are ignored; the store remains the source of truth.
	_ = c.redis.Set(ctx, nameKey(kind, id), name, nameTTL).Err()
}

func (c *RedisNameCache) Invalidate(ctx context.Context, kind, id string) {
	_ = c.redis.Del(ctx, nameKey(kind, id)).Err()
}

func nameKey(kind, id string) string {
	return fmt.Sprintf("directory:%s:%s:name", kind, id)
}
