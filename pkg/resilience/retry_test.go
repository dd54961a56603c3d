package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

func TestRetry_SucceedsWithinAttempts(t *testing.T) {
	r := NewRetry(types.RetryPolicy{
		MaxAttempts:    3,
		BaseDelayMS:    1,
		MaximumDelayMS: 5,
		RetryableKinds: types.DefaultRetryableKinds(),
	})

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return types.NewFailure(types.FailureTransport, "flaky", nil)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetry_DoesNotRetryNonRetryableKind(t *testing.T) {
	r := NewRetry(types.DefaultRetryPolicy())
	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return types.NewFailure(types.FailureInvalidArgument, "bad input", nil)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	r := NewRetry(types.RetryPolicy{
		MaxAttempts:    3,
		BaseDelayMS:    1,
		MaximumDelayMS: 2,
		RetryableKinds: types.DefaultRetryableKinds(),
	})
	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return types.NewFailure(types.FailureTimeout, "slow", nil)
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_RemoteStatusOnlyRetriedForUnavailableOrResourceExhausted(t *testing.T) {
	r := NewRetry(types.RetryPolicy{
		MaxAttempts:    3,
		BaseDelayMS:    1,
		MaximumDelayMS: 2,
		RetryableKinds: types.DefaultRetryableKinds(),
	})

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return &types.IpcFailure{Kind: types.FailureRemoteStatus, RemoteCode: "FailedPrecondition"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a remote-status code outside Unavailable/ResourceExhausted must not be retried")

	calls = 0
	err = r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return &types.IpcFailure{Kind: types.FailureRemoteStatus, RemoteCode: "ResourceExhausted"}
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls, "ResourceExhausted must still retry up to MaxAttempts")
}

func TestRetry_StopsOnContextDone(t *testing.T) {
	r := NewRetry(types.RetryPolicy{
		MaxAttempts:    5,
		BaseDelayMS:    50,
		MaximumDelayMS: 50,
		RetryableKinds: types.DefaultRetryableKinds(),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := r.Execute(ctx, func(ctx context.Context) error {
		return types.NewFailure(types.FailureTransport, "flaky", nil)
	})
	require.Error(t, err)
}
