package ipcerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lspecian/intellirouter/pkg/types"
)

func TestToStatus_RoundTrip(t *testing.T) {
	cases := []struct {
		kind types.FailureKind
		code codes.Code
	}{
		{types.FailureNotFound, codes.NotFound},
		{types.FailureInvalidArgument, codes.InvalidArgument},
		{types.FailureSecurity, codes.PermissionDenied},
		{types.FailureTimeout, codes.DeadlineExceeded},
	}
	for _, tc := range cases {
		fail := types.NewFailure(tc.kind, "reason", nil)
		st := ToStatus(fail)
		s, ok := status.FromError(st)
		assert.True(t, ok)
		assert.Equal(t, tc.code, s.Code())
	}
}

func TestFromStatus_MapsBack(t *testing.T) {
	st := status.Error(codes.NotFound, "no such model")
	fail, ok := types.AsFailure(FromStatus(st))
	assert.True(t, ok)
	assert.Equal(t, types.FailureNotFound, fail.Kind)
}

func TestFromStatus_NonGRPCError(t *testing.T) {
	fail, ok := types.AsFailure(FromStatus(errors.New("dial tcp: connection refused")))
	assert.True(t, ok)
	assert.Equal(t, types.FailureTransport, fail.Kind)
}

func TestToStatus_NonIpcFailure(t *testing.T) {
	st := ToStatus(errors.New("boom"))
	s, ok := status.FromError(st)
	assert.True(t, ok)
	assert.Equal(t, codes.Internal, s.Code())
}
