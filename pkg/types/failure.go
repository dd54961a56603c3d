package types

import (
	"errors"
	"fmt"
)

// FailureKind is the tagged variant of IpcFailure. Every fabric operation
// returns either a success value or exactly one FailureKind; call sites are
// expected to switch on Kind(), never to pattern-match on the message text.
type FailureKind string

const (
	FailureTransport       FailureKind = "transport"
	FailureRemoteStatus    FailureKind = "remote_status"
	FailureConnection      FailureKind = "connection"
	FailureSerialization   FailureKind = "serialization"
	FailureTimeout         FailureKind = "timeout"
	FailureNotFound        FailureKind = "not_found"
	FailureInvalidArgument FailureKind = "invalid_argument"
	FailureInternal        FailureKind = "internal"
	FailureSecurity        FailureKind = "security"
)

// IpcFailure is the sole failure surface of the fabric.
type IpcFailure struct {
	Kind FailureKind
	// RemoteCode preserves the original wire status code when Kind is
	// FailureRemoteStatus and none of the other variants apply.
	RemoteCode string
	// Reason distinguishes sub-cases within a Kind (e.g. "expired",
	// "bad-signature", "missing-role" for FailureSecurity; "circuit open"
	// for FailureInternal).
	Reason string
	Err    error
}

func (f *IpcFailure) Error() string {
	if f.Reason != "" {
		return fmt.Sprintf("intellirouter: %s: %s", f.Kind, f.Reason)
	}
	if f.Err != nil {
		return fmt.Sprintf("intellirouter: %s: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("intellirouter: %s", f.Kind)
}

func (f *IpcFailure) Unwrap() error { return f.Err }

// NewFailure builds an IpcFailure of the given kind wrapping err.
func NewFailure(kind FailureKind, reason string, err error) *IpcFailure {
	return &IpcFailure{Kind: kind, Reason: reason, Err: err}
}

// AsFailure unwraps err into an *IpcFailure if it is (or wraps) one.
func AsFailure(err error) (*IpcFailure, bool) {
	if err == nil {
		return nil, false
	}
	var ipc *IpcFailure
	if errors.As(err, &ipc) {
		return ipc, true
	}
	return nil, false
}

// RetryPolicy parameterizes the resilience layer's bounded exponential
// backoff with jitter.
type RetryPolicy struct {
	MaxAttempts      int
	BaseDelayMS      int
	MaximumDelayMS   int
	BackoffExponent  float64
	JitterFraction   float64
	RetryableKinds   map[FailureKind]bool
}

// DefaultRetryableKinds is the default retryable-kind-set from spec §4.6:
// Transport, Timeout (with budget remaining), Connection, and RemoteStatus
// are retried; everything else is not. RemoteStatus is further narrowed at
// the point of use (pkg/resilience.Retry) to only RemoteCode values of
// Unavailable or ResourceExhausted — this map alone is not the full
// retry-eligibility decision for that kind.
func DefaultRetryableKinds() map[FailureKind]bool {
	return map[FailureKind]bool{
		FailureTransport:    true,
		FailureTimeout:      true,
		FailureConnection:   true,
		FailureRemoteStatus: true,
	}
}

// DefaultRetryPolicy mirrors the teacher's pattern of documented zero-value
// defaults applied at construction time.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		BaseDelayMS:     100,
		MaximumDelayMS:  5000,
		BackoffExponent: 2,
		JitterFraction:  0.25,
		RetryableKinds:  DefaultRetryableKinds(),
	}
}

// BreakerState is the circuit breaker's three-state machine.
type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

// CircuitBreakerConfig parameterizes a per-endpoint breaker.
type CircuitBreakerConfig struct {
	TripThreshold    int
	CoolDownMS       int
	HalfOpenProbes   int
}

// DefaultCircuitBreakerConfig mirrors common defaults seen across the
// pack's resilience packages.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		TripThreshold:  5,
		CoolDownMS:     30000,
		HalfOpenProbes: 1,
	}
}
