package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterEnforcesBudget(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(2, nil)
	rl.now = clock.Now
	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "vg_key_a"))
	assert.True(t, rl.Allow(ctx, "vg_key_a"))
	assert.False(t, rl.Allow(ctx, "vg_key_a"))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(1, nil)
	rl.now = clock.Now
	ctx := context.Background()

	assert.True(t, rl.Allow(ctx, "vg_key_a"))
	assert.False(t, rl.Allow(ctx, "vg_key_a"))
	assert.True(t, rl.Allow(ctx, "vg_key_b"), "a different key has its own bucket")
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(60, nil)
	rl.now = clock.Now
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		assert.True(t, rl.Allow(ctx, "vg_key_a"), "request %d within budget", i)
	}
	assert.False(t, rl.Allow(ctx, "vg_key_a"))

	// One second refills one token at 60 rpm.
	clock.Advance(time.Second)
	assert.True(t, rl.Allow(ctx, "vg_key_a"))
	assert.False(t, rl.Allow(ctx, "vg_key_a"))
}
