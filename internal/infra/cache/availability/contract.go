package availability

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient подмножество команд go-redis, которыми пользуется кеш
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}
