package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis, *fakeClock) {
	t.Helper()
	server := miniredis.RunT(t)
	client := NewRedisClient(server.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRedisLimiter(client, limit, window)
	rl.now = clock.Now
	return rl, server, clock
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	rl, _, clock := newTestRedisLimiter(t, 2, time.Minute)

	assert.True(t, allow(t, rl, "10.0.0.1"))
	assert.True(t, allow(t, rl, "10.0.0.1"))
	assert.False(t, allow(t, rl, "10.0.0.1"))
	assert.True(t, allow(t, rl, "10.0.0.2"))

	clock.Advance(time.Minute)
	assert.True(t, allow(t, rl, "10.0.0.1"))
}

func TestRedisLimiter_KeysExpire(t *testing.T) {
	rl, server, _ := newTestRedisLimiter(t, 5, time.Minute)

	allow(t, rl, "10.0.0.1")

	keys := server.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], redisKeyPrefix+"10.0.0.1:")
	assert.Equal(t, time.Minute, server.TTL(keys[0]))
}

func TestRedisLimiter_ServerDown(t *testing.T) {
	rl, server, _ := newTestRedisLimiter(t, 5, time.Minute)
	server.Close()

	_, err := rl.Allow(context.Background(), "10.0.0.1")
	assert.ErrorContains(t, err, "rate limit counter")
}
