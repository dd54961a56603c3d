package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

func TestResilient_ComposesDeadlineBreakerRetry(t *testing.T) {
	breaker := NewCircuitBreaker(types.CircuitBreakerConfig{TripThreshold: 5, CoolDownMS: 1000, HalfOpenProbes: 1})
	retry := NewRetry(types.RetryPolicy{
		MaxAttempts:    3,
		BaseDelayMS:    1,
		MaximumDelayMS: 2,
		RetryableKinds: types.DefaultRetryableKinds(),
	})

	calls := 0
	err := Resilient(context.Background(), Policy{Deadline: time.Second, Breaker: breaker, Retry: retry}, func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return types.NewFailure(types.FailureTransport, "flaky", nil)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, types.BreakerClosed, breaker.Snapshot().State)
}

func TestResilient_BreakerOpenShortCircuitsRetry(t *testing.T) {
	breaker := NewCircuitBreaker(types.CircuitBreakerConfig{TripThreshold: 1, CoolDownMS: 60000, HalfOpenProbes: 1})
	retry := NewRetry(types.RetryPolicy{MaxAttempts: 3, BaseDelayMS: 1, MaximumDelayMS: 1, RetryableKinds: types.DefaultRetryableKinds()})

	always := func(ctx context.Context) error { return types.NewFailure(types.FailureTransport, "down", nil) }

	_ = Resilient(context.Background(), Policy{Breaker: breaker, Retry: retry}, always)
	assert.Equal(t, types.BreakerOpen, breaker.Snapshot().State)

	calls := 0
	err := Resilient(context.Background(), Policy{Breaker: breaker, Retry: retry}, func(ctx context.Context) error {
		calls++
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 0, calls)
}
