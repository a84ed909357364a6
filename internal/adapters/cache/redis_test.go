package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisCache_FailsWhenUnreachable(t *testing.T) {
	_, err := NewRedisCache("127.0.0.1:1", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestRedisCache_ErrorsSurfaceWithKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCacheFromClient(client)
	defer c.Close()

	ctx := context.Background()

	var dest []string
	ok, err := c.Get(ctx, "designs:all", &dest)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "designs:all")

	err = c.Set(ctx, "users:1", map[string]string{"id": "1"}, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "users:1")

	assert.NoError(t, c.Invalidate(ctx))
	assert.Error(t, c.Ping(ctx))
}
