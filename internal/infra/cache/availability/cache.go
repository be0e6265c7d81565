package availability

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultPrefix = "tablebooking:availability"
	DefaultTTL    = 30 * time.Second
)

// Cache снимки доступности в Redis.
// Ключ включает поколение журнала: любая записанная бронь увеличивает его,
// после чего старые снимки больше не читаются и истекают по TTL
type Cache struct {
	client RedisClient
	prefix string
	ttl    time.Duration
}

func New(client RedisClient, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// Get читает снимок в dest. Возвращает false при промахе
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	fullKey, err := c.key(ctx, key)
	if err != nil {
		return false, err
	}

	raw, err := c.client.Get(ctx, fullKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrCacheRead, fullKey, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("%w: %v", ErrCodec, err)
	}

	return true, nil
}

// Set сохраняет снимок с TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	fullKey, err := c.key(ctx, key)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCodec, err)
	}

	if err := c.client.Set(ctx, fullKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheWrite, fullKey, err)
	}

	return nil
}

// Invalidate начинает новое поколение снимков
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("%w: incr generation: %v", ErrCacheWrite, err)
	}
	return nil
}

func (c *Cache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *Cache) key(ctx context.Context, key string) (string, error) {
	generation, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: get generation: %v", ErrCacheRead, err)
	}

	sum := sha1.Sum([]byte(key))
	return fmt.Sprintf("%s:g%d:%x", c.prefix, generation, sum[:]), nil
}

// Nop кеш-заглушка, когда Redis не настроен
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (Nop) Set(context.Context, string, interface{}) error { return nil }

func (Nop) Invalidate(context.Context) error { return nil }
