package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/lspecian/intellirouter/pkg/metrics"
	"github.com/lspecian/intellirouter/pkg/types"
)

// Retry re-attempts a failing operation per a types.RetryPolicy: bounded
// exponential backoff from BaseDelayMS up to MaximumDelayMS, jittered by
// JitterFraction, retrying only FailureKinds the policy's RetryableKinds
// marks true. An error that doesn't unwrap to an IpcFailure is never
// retried: the taxonomy is closed, and an unrecognized error is treated as
// non-retryable by default.
type Retry struct {
	policy   types.RetryPolicy
	endpoint string
}

// NewRetry wraps policy, falling back to types.DefaultRetryPolicy for a
// zero-value MaxAttempts. It carries no endpoint label for metrics (use
// NewRetryForEndpoint when one is known).
func NewRetry(policy types.RetryPolicy) *Retry {
	return NewRetryForEndpoint(policy, "")
}

// NewRetryForEndpoint wraps policy like NewRetry, labeling every
// metrics.IncRetry observation with endpoint.
func NewRetryForEndpoint(policy types.RetryPolicy, endpoint string) *Retry {
	if policy.MaxAttempts <= 0 {
		policy = types.DefaultRetryPolicy()
	}
	if policy.RetryableKinds == nil {
		policy.RetryableKinds = types.DefaultRetryableKinds()
	}
	return &Retry{policy: policy, endpoint: endpoint}
}

// Execute runs op, retrying per the wrapped policy. It returns the last
// error seen once attempts are exhausted or ctx is done.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.retryable(err) {
			return err
		}
		if attempt >= r.policy.MaxAttempts {
			break
		}

		if r.endpoint != "" {
			if fail, ok := types.AsFailure(err); ok {
				metrics.IncRetry(r.endpoint, string(fail.Kind))
			}
		}

		delay := r.delayFor(attempt)
		select {
		case <-ctx.Done():
			return types.NewFailure(types.FailureTimeout, "deadline exceeded during retry backoff", ctx.Err())
		case <-time.After(delay):
		}
	}
	return lastErr
}

// remoteStatusRetryableCodes are the only RemoteCode values a
// FailureRemoteStatus is retried for by default — spec §4.6 restricts the
// retryable remote-status set to Unavailable and ResourceExhausted, not
// every status code that falls through codeToKind's mapping (Aborted,
// FailedPrecondition, Unimplemented, DataLoss, Unknown, ... are not
// retried even though they classify as FailureRemoteStatus).
var remoteStatusRetryableCodes = map[string]bool{
	"Unavailable":      true,
	"ResourceExhausted": true,
}

func (r *Retry) retryable(err error) bool {
	fail, ok := types.AsFailure(err)
	if !ok {
		return false
	}
	if !r.policy.RetryableKinds[fail.Kind] {
		return false
	}
	if fail.Kind == types.FailureRemoteStatus {
		return remoteStatusRetryableCodes[fail.RemoteCode]
	}
	return true
}

func (r *Retry) delayFor(attempt int) time.Duration {
	base := float64(r.policy.BaseDelayMS)
	exp := r.policy.BackoffExponent
	if exp <= 0 {
		exp = 2
	}
	raw := base * math.Pow(exp, float64(attempt-1))
	if max := float64(r.policy.MaximumDelayMS); max > 0 && raw > max {
		raw = max
	}

	if r.policy.JitterFraction > 0 {
		jitter := raw * r.policy.JitterFraction
		raw = raw - jitter + rand.Float64()*2*jitter
	}
	if raw < 0 {
		raw = 0
	}
	return time.Duration(raw) * time.Millisecond
}
