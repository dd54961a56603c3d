package types

import "sync/atomic"

// Subscription is a live handle to an ordered event stream on one Channel.
// It outlives neither its owning session nor an explicit Release call; a
// Subscription dropped without Release is a usage error. The type records
// only whether Release was called (see Released); it does not detect a
// handle that is dropped without one.
type Subscription struct {
	ID      string
	Channel Channel
	released int32
}

// NewSubscription returns a Subscription handle for channel.
func NewSubscription(id string, channel Channel) *Subscription {
	return &Subscription{ID: id, Channel: channel}
}

// Release marks the subscription as explicitly released. It is idempotent;
// calling it more than once is not itself an error.
func (s *Subscription) Release() {
	atomic.StoreInt32(&s.released, 1)
}

// Released reports whether Release has been called.
func (s *Subscription) Released() bool {
	return atomic.LoadInt32(&s.released) == 1
}

// CircuitBreakerState is the live, mutable per-endpoint state a
// CircuitBreakerConfig governs: the current BreakerState, the count of
// consecutive failures since the last successful call, a monotonic marker
// of the last transition, and the number of half-open probes still
// permitted before the breaker re-opens on a probe failure.
type CircuitBreakerState struct {
	State               BreakerState
	ConsecutiveFailures int
	LastTransitionAtUnixNano int64
	ProbeAllowance      int
}

// NewCircuitBreakerState returns a breaker state starting closed.
func NewCircuitBreakerState() CircuitBreakerState {
	return CircuitBreakerState{State: BreakerClosed}
}
