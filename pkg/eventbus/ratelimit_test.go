package eventbus

import (
	"context"
	"testing"

	"golang.org/x/time/rate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

func TestRateLimitedBroker_NilLimiterPassesThrough(t *testing.T) {
	inner := NewInProcessBroker()
	b := NewRateLimitedBroker(inner, nil)

	ch, err := types.NewChannel("svc_a", "svc_b", "event")
	require.NoError(t, err)
	err = b.Publish(context.Background(), ch, types.CallEnvelope{})
	require.NoError(t, err)
}

func TestRateLimitedBroker_RejectsOverLimit(t *testing.T) {
	inner := NewInProcessBroker()
	limiter := rate.NewLimiter(rate.Limit(0), 1)
	b := NewRateLimitedBroker(inner, limiter)

	ch, err := types.NewChannel("svc_a", "svc_b", "event")
	require.NoError(t, err)
	require.NoError(t, b.Publish(context.Background(), ch, types.CallEnvelope{}))

	err = b.Publish(context.Background(), ch, types.CallEnvelope{})
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, types.FailureInternal, fail.Kind)
}

func TestRateLimitedBroker_SubscribeAndCloseDelegate(t *testing.T) {
	inner := NewInProcessBroker()
	b := NewRateLimitedBroker(inner, nil)

	ch, err := types.NewChannel("svc_a", "svc_b", "event")
	require.NoError(t, err)
	sub, err := b.Subscribe(context.Background(), ch)
	require.NoError(t, err)
	require.NotNil(t, sub)

	require.NoError(t, b.Close())
}
