package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(capacity int, refill time.Duration) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewMemoryLimiter(capacity, refill)
	rl.now = clock.Now
	return rl, clock
}

func allow(t *testing.T, l Limiter, key string) bool {
	t.Helper()
	ok, err := l.Allow(context.Background(), key)
	require.NoError(t, err)
	return ok
}

func TestMemoryLimiter_ExhaustsAndRefills(t *testing.T) {
	rl, clock := newTestLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, allow(t, rl, "10.0.0.1"), "request %d", i+1)
	}
	assert.False(t, allow(t, rl, "10.0.0.1"))

	clock.Advance(59 * time.Second)
	assert.False(t, allow(t, rl, "10.0.0.1"))

	clock.Advance(time.Second)
	assert.True(t, allow(t, rl, "10.0.0.1"))
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)
	defer rl.Stop()

	assert.True(t, allow(t, rl, "a"))
	assert.False(t, allow(t, rl, "a"))
	assert.True(t, allow(t, rl, "b"))
}

func TestMemoryLimiter_Cleanup(t *testing.T) {
	rl, clock := newTestLimiter(5, time.Minute)
	defer rl.Stop()

	allow(t, rl, "stale")
	clock.Advance(2 * time.Hour)
	allow(t, rl, "fresh")

	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "stale")
	assert.Contains(t, rl.clients, "fresh")
}

func TestMemoryLimiter_StopTwice(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Second)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
