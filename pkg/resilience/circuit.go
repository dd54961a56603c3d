package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/lspecian/intellirouter/pkg/metrics"
	"github.com/lspecian/intellirouter/pkg/types"
)

// CircuitBreaker guards a single target endpoint. Its state lives in a
// types.CircuitBreakerState mutated entirely behind one mutex; that state
// is also what Snapshot and cmd/ipcctl's breaker-status command read.
type CircuitBreaker struct {
	config   types.CircuitBreakerConfig
	endpoint string

	mu            sync.Mutex
	state         types.CircuitBreakerState
	halfOpenCount int
}

// NewCircuitBreaker returns a breaker starting closed, with no endpoint
// label for metrics (use NewCircuitBreakerForEndpoint when one is known).
func NewCircuitBreaker(config types.CircuitBreakerConfig) *CircuitBreaker {
	return NewCircuitBreakerForEndpoint(config, "")
}

// NewCircuitBreakerForEndpoint returns a breaker starting closed, labeling
// every metrics.SetCircuitState observation with endpoint.
func NewCircuitBreakerForEndpoint(config types.CircuitBreakerConfig, endpoint string) *CircuitBreaker {
	return &CircuitBreaker{
		config:   config,
		endpoint: endpoint,
		state:    types.NewCircuitBreakerState(),
	}
}

// Snapshot returns a copy of the breaker's current state, resolving an
// open-but-cooled-down breaker to half-open first.
func (cb *CircuitBreaker) Snapshot() types.CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.promoteIfCooledDownLocked()
	return cb.state
}

// Execute runs op if the breaker currently admits calls, returning
// types.FailureInternal("circuit open") immediately if not. op's error, if
// any, is fed back into the breaker's transition logic before being
// returned to the caller unchanged.
func (cb *CircuitBreaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := cb.before(); err != nil {
		return err
	}
	err := op(ctx)
	cb.after(err)
	return err
}

func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.promoteIfCooledDownLocked()

	switch cb.state.State {
	case types.BreakerOpen:
		return types.NewFailure(types.FailureInternal, "circuit open", nil)
	case types.BreakerHalfOpen:
		if cb.halfOpenCount >= maxInt(cb.config.HalfOpenProbes, 1) {
			return types.NewFailure(types.FailureInternal, "circuit open", nil)
		}
		cb.halfOpenCount++
		cb.state.ProbeAllowance = maxInt(cb.config.HalfOpenProbes, 1) - cb.halfOpenCount
	}
	return nil
}

func (cb *CircuitBreaker) after(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state.State {
	case types.BreakerClosed:
		if err != nil {
			cb.state.ConsecutiveFailures++
			if cb.state.ConsecutiveFailures >= maxInt(cb.config.TripThreshold, 1) {
				cb.transitionLocked(types.BreakerOpen)
			}
		} else {
			cb.state.ConsecutiveFailures = 0
		}
	case types.BreakerHalfOpen:
		if err != nil {
			cb.transitionLocked(types.BreakerOpen)
		} else {
			cb.state.ConsecutiveFailures = 0
			cb.transitionLocked(types.BreakerClosed)
		}
	}
}

func (cb *CircuitBreaker) promoteIfCooledDownLocked() {
	if cb.state.State != types.BreakerOpen {
		return
	}
	cooldown := time.Duration(cb.config.CoolDownMS) * time.Millisecond
	elapsed := time.Duration(nowUnixNano()-cb.state.LastTransitionAtUnixNano) * time.Nanosecond
	if elapsed >= cooldown {
		cb.transitionLocked(types.BreakerHalfOpen)
	}
}

func (cb *CircuitBreaker) transitionLocked(to types.BreakerState) {
	cb.state.State = to
	cb.state.LastTransitionAtUnixNano = nowUnixNano()
	cb.state.ProbeAllowance = maxInt(cb.config.HalfOpenProbes, 1)
	cb.halfOpenCount = 0
	if cb.endpoint != "" {
		metrics.SetCircuitState(cb.endpoint, breakerStateMetricValue(to), to == types.BreakerOpen)
	}
}

func breakerStateMetricValue(s types.BreakerState) int {
	switch s {
	case types.BreakerHalfOpen:
		return 1
	case types.BreakerOpen:
		return 2
	default:
		return 0
	}
}

func nowUnixNano() int64 { return time.Now().UnixNano() }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
