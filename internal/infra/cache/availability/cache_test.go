package availability

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRedis фейковый Redis поверх map
type memoryRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	var n int64
	if v, ok := m.data[key]; ok {
		n, _ = strconv.ParseInt(v, 10, 64)
	}
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

type snapshot struct {
	Available bool `json:"available"`
	Total     int  `json:"total"`
}

func TestCache_SetGet(t *testing.T) {
	rdb := newMemoryRedis()
	c := New(rdb, "test", time.Minute)
	ctx := context.Background()

	var got snapshot
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", snapshot{Available: true, Total: 3}))

	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, snapshot{Available: true, Total: 3}, got)

	for _, ttl := range rdb.ttls {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestCache_InvalidateStartsNewGeneration(t *testing.T) {
	rdb := newMemoryRedis()
	c := New(rdb, "test", 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", snapshot{Total: 1}))
	require.NoError(t, c.Invalidate(ctx))

	var got snapshot
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCache_ReadError(t *testing.T) {
	rdb := newMemoryRedis()
	rdb.getErr = errors.New("connection refused")
	c := New(rdb, "", 0)

	var got snapshot
	_, err := c.Get(context.Background(), "k", &got)
	assert.ErrorIs(t, err, ErrCacheRead)
}

func TestNop(t *testing.T) {
	var c Nop
	hit, err := c.Get(context.Background(), "k", &snapshot{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(context.Background(), "k", 1))
	assert.NoError(t, c.Invalidate(context.Background()))
}
