package security

import (
	"context"
	"sync"
	"time"

	"github.com/vectorgov/vectorgov-go/internal/alert"
	"github.com/vectorgov/vectorgov-go/internal/metrics"
)

// RateLimiter enforces a per-key requests-per-minute budget with a
// token bucket per API key. A rejected request raises a rate-limit
// alert carrying only a truncated key.
type RateLimiter struct {
	rpm     int
	alerts  *alert.Dispatcher
	metrics *metrics.Metrics

	mu      sync.Mutex
	buckets map[string]*bucket

	now func() time.Time
}

type bucket struct {
	tokens   float64
	used     int
	lastFill time.Time
}

// NewRateLimiter creates a limiter allowing rpm requests per minute per
// API key. dispatcher may be nil.
func NewRateLimiter(rpm int, dispatcher *alert.Dispatcher) *RateLimiter {
	if rpm <= 0 {
		rpm = 60
	}
	return &RateLimiter{
		rpm:     rpm,
		alerts:  dispatcher,
		metrics: metrics.Get(),
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether a request for the given API key fits the
// budget, consuming one token when it does.
func (rl *RateLimiter) Allow(ctx context.Context, apiKey string) bool {
	rl.mu.Lock()
	now := rl.now()

	b, ok := rl.buckets[apiKey]
	if !ok {
		b = &bucket{tokens: float64(rl.rpm), lastFill: now}
		rl.buckets[apiKey] = b
	}

	// Continuous refill proportional to elapsed time.
	elapsed := now.Sub(b.lastFill)
	b.tokens += elapsed.Seconds() * float64(rl.rpm) / 60.0
	if b.tokens > float64(rl.rpm) {
		b.tokens = float64(rl.rpm)
		b.used = 0
	}
	b.lastFill = now

	if b.tokens >= 1 {
		b.tokens--
		b.used++
		rl.mu.Unlock()
		return true
	}

	used := b.used
	rl.mu.Unlock()

	rl.metrics.RecordRateLimitRejection()
	if rl.alerts != nil {
		rl.alerts.AlertRateLimitExceeded(ctx, apiKey, rl.rpm, used+1)
	}
	return false
}
