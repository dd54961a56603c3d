package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFailure_ErrorMessageVariants(t *testing.T) {
	withReason := NewFailure(FailureSecurity, "missing-role", nil)
	assert.Equal(t, "intellirouter: security: missing-role", withReason.Error())

	withErr := NewFailure(FailureConnection, "", errors.New("dial tcp: refused"))
	assert.Equal(t, "intellirouter: connection: dial tcp: refused", withErr.Error())

	bare := NewFailure(FailureInternal, "", nil)
	assert.Equal(t, "intellirouter: internal", bare.Error())
}

func TestIpcFailure_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	f := NewFailure(FailureTransport, "", inner)
	assert.Same(t, inner, errors.Unwrap(f))
	assert.True(t, errors.Is(f, inner))
}

func TestAsFailure(t *testing.T) {
	f := NewFailure(FailureTimeout, "deadline exceeded", nil)

	got, ok := AsFailure(f)
	assert.True(t, ok)
	assert.Equal(t, f, got)

	_, ok = AsFailure(errors.New("plain error"))
	assert.False(t, ok)

	_, ok = AsFailure(nil)
	assert.False(t, ok)
}

func TestDefaultRetryableKinds_MatchesSpecSet(t *testing.T) {
	kinds := DefaultRetryableKinds()
	for _, k := range []FailureKind{FailureTransport, FailureTimeout, FailureConnection, FailureRemoteStatus} {
		assert.True(t, kinds[k], "%s should be retryable by default", k)
	}
	for _, k := range []FailureKind{FailureNotFound, FailureInvalidArgument, FailureSecurity, FailureInternal} {
		assert.False(t, kinds[k], "%s should not be retryable by default", k)
	}
}
