package security

import (
	"context"
	"sync"
	"time"

	"github.com/vectorgov/vectorgov-go/internal/alert"
	"github.com/vectorgov/vectorgov-go/internal/metrics"
	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

// BreakerState is the circuit breaker state
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// CircuitBreakerConfig tunes the breaker
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that trips
	// the breaker open. Defaults to 5.
	FailureThreshold int
	// ResetTimeout is how long the breaker stays open before allowing a
	// half-open probe. Defaults to 30s.
	ResetTimeout time.Duration
}

// CircuitBreaker guards calls to a downstream service. Closed passes
// calls through; after FailureThreshold consecutive failures it opens
// and rejects calls until ResetTimeout elapses, then allows a single
// half-open probe. The transition to open raises an alert.
type CircuitBreaker struct {
	service string
	config  CircuitBreakerConfig
	alerts  *alert.Dispatcher
	metrics *metrics.Metrics

	mu          sync.Mutex
	state       BreakerState
	failures    int
	lastFailure time.Time

	now func() time.Time
}

// NewCircuitBreaker creates a breaker for the named service.
// dispatcher may be nil.
func NewCircuitBreaker(service string, config CircuitBreakerConfig, dispatcher *alert.Dispatcher) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}

	return &CircuitBreaker{
		service: service,
		config:  config,
		alerts:  dispatcher,
		metrics: metrics.Get(),
		state:   StateClosed,
		now:     time.Now,
	}
}

// State returns the current breaker state
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Execute runs fn under the breaker. When the breaker is open the call
// is rejected without invoking fn.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := cb.allow(); err != nil {
		return err
	}

	if err := fn(); err != nil {
		cb.recordFailure(ctx)
		return err
	}

	cb.recordSuccess()
	return nil
}

func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.lastFailure) < cb.config.ResetTimeout {
			return utils.NewAppError(utils.ErrCodeCircuitOpen,
				"circuit breaker is open", cb.service)
		}
		cb.setState(StateHalfOpen)
	}

	return nil
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	if cb.state != StateClosed {
		cb.setState(StateClosed)
	}
}

func (cb *CircuitBreaker) recordFailure(ctx context.Context) {
	cb.mu.Lock()
	cb.failures++
	cb.lastFailure = cb.now()

	tripped := false
	if cb.state == StateHalfOpen || (cb.state == StateClosed && cb.failures >= cb.config.FailureThreshold) {
		cb.setState(StateOpen)
		tripped = true
	}
	failures := cb.failures
	cb.mu.Unlock()

	if tripped && cb.alerts != nil {
		cb.alerts.AlertCircuitBreakerOpen(ctx, cb.service, failures)
	}
}

// setState must be called with cb.mu held.
func (cb *CircuitBreaker) setState(state BreakerState) {
	cb.state = state
	cb.metrics.SetCircuitBreakerState(cb.service, float64(state))
}
