package security

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var errUpstream = errors.New("upstream failure")

func failing() error { return errUpstream }
func succeeding() error { return nil }

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker("vectorgov-api", CircuitBreakerConfig{FailureThreshold: 3}, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		assert.Error(t, cb.Execute(ctx, failing))
		assert.Equal(t, StateClosed, cb.State())
	}

	assert.Error(t, cb.Execute(ctx, failing))
	assert.Equal(t, StateOpen, cb.State())

	// Calls are rejected without reaching the function.
	err := cb.Execute(ctx, func() error {
		t.Error("function must not run while the breaker is open")
		return nil
	})
	require.Error(t, err)
	appErr, ok := utils.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, utils.ErrCodeCircuitOpen, appErr.Code)
}

func TestCircuitBreakerHalfOpenProbe(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("vectorgov-api", CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     30 * time.Second,
	}, nil)
	cb.now = clock.Now
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, failing))
	require.Equal(t, StateOpen, cb.State())

	// Still inside the reset window: rejected.
	clock.Advance(10 * time.Second)
	assert.Error(t, cb.Execute(ctx, succeeding))

	// After the window a probe is allowed; success closes the breaker.
	clock.Advance(21 * time.Second)
	assert.NoError(t, cb.Execute(ctx, succeeding))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerFailedProbeReopens(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("vectorgov-api", CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     30 * time.Second,
	}, nil)
	cb.now = clock.Now
	ctx := context.Background()

	require.Error(t, cb.Execute(ctx, failing))
	clock.Advance(31 * time.Second)

	// The half-open probe fails and trips the breaker again.
	assert.Error(t, cb.Execute(ctx, failing))
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("vectorgov-api", CircuitBreakerConfig{FailureThreshold: 3}, nil)
	ctx := context.Background()

	assert.Error(t, cb.Execute(ctx, failing))
	assert.Error(t, cb.Execute(ctx, failing))
	assert.NoError(t, cb.Execute(ctx, succeeding))

	// The streak restarted: two more failures stay below the threshold.
	assert.Error(t, cb.Execute(ctx, failing))
	assert.Error(t, cb.Execute(ctx, failing))
	assert.Equal(t, StateClosed, cb.State())
}
