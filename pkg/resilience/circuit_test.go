package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(types.CircuitBreakerConfig{TripThreshold: 2, CoolDownMS: 50, HalfOpenProbes: 1})
	failing := func(ctx context.Context) error {
		return types.NewFailure(types.FailureTransport, "boom", errors.New("boom"))
	}

	require.Error(t, cb.Execute(context.Background(), failing))
	require.Error(t, cb.Execute(context.Background(), failing))
	assert.Equal(t, types.BreakerOpen, cb.Snapshot().State)

	err := cb.Execute(context.Background(), failing)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "circuit open", fail.Reason)
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := NewCircuitBreaker(types.CircuitBreakerConfig{TripThreshold: 1, CoolDownMS: 1, HalfOpenProbes: 1})
	failing := func(ctx context.Context) error { return types.NewFailure(types.FailureTransport, "x", nil) }
	succeeding := func(ctx context.Context) error { return nil }

	require.Error(t, cb.Execute(context.Background(), failing))
	assert.Equal(t, types.BreakerOpen, cb.Snapshot().State)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, cb.Execute(context.Background(), succeeding))
	assert.Equal(t, types.BreakerClosed, cb.Snapshot().State)
}

func TestRegistry_SharesBreakerPerEndpoint(t *testing.T) {
	reg := NewRegistry(func(endpoint string) *CircuitBreaker {
		return NewCircuitBreaker(types.DefaultCircuitBreakerConfig())
	})

	a := reg.Get("model_registry")
	b := reg.Get("model_registry")
	assert.Same(t, a, b)

	other := reg.Get("memory")
	assert.NotSame(t, a, other)
}
