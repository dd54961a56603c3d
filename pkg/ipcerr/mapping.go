package ipcerr

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lspecian/intellirouter/pkg/types"
)

// kindToCode is the canonical, one-directional mapping from FailureKind to
// the gRPC status code a server sends for it. FailureRemoteStatus has no
// entry here: it is only ever produced on the receiving side, wrapping a
// code this table doesn't otherwise recognize.
var kindToCode = map[types.FailureKind]codes.Code{
	types.FailureTransport:       codes.Unavailable,
	types.FailureConnection:      codes.Unavailable,
	types.FailureSerialization:   codes.InvalidArgument,
	types.FailureTimeout:        codes.DeadlineExceeded,
	types.FailureNotFound:        codes.NotFound,
	types.FailureInvalidArgument: codes.InvalidArgument,
	types.FailureInternal:        codes.Internal,
	types.FailureSecurity:        codes.PermissionDenied,
}

var codeToKind = map[codes.Code]types.FailureKind{
	codes.Unavailable:       types.FailureConnection,
	codes.InvalidArgument:   types.FailureInvalidArgument,
	codes.DeadlineExceeded:  types.FailureTimeout,
	codes.NotFound:          types.FailureNotFound,
	codes.Internal:          types.FailureInternal,
	codes.PermissionDenied:  types.FailureSecurity,
	codes.Unauthenticated:   types.FailureSecurity,
	codes.ResourceExhausted: types.FailureRemoteStatus,
	codes.Unknown:           types.FailureRemoteStatus,
}

// ToStatus converts an IpcFailure (or any error) into a gRPC status error
// suitable for returning from a server handler. A nil error and a non-
// IpcFailure error both map to an Internal status, the latter carrying its
// original message so it isn't silently swallowed.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	fail, ok := types.AsFailure(err)
	if !ok {
		return status.Error(codes.Internal, err.Error())
	}
	code, ok := kindToCode[fail.Kind]
	if !ok {
		code = codes.Internal
	}
	return status.Error(code, fail.Error())
}

// FromStatus converts a gRPC status error observed by a client back into an
// IpcFailure. An error that carries no gRPC status (a dial failure, a
// context cancellation) is classified FailureTransport.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.NewFailure(types.FailureTimeout, "deadline exceeded", err)
	}
	st, ok := status.FromError(err)
	if !ok {
		return types.NewFailure(types.FailureTransport, "", err)
	}
	kind, ok := codeToKind[st.Code()]
	if !ok {
		kind = types.FailureRemoteStatus
	}
	return &types.IpcFailure{Kind: kind, RemoteCode: st.Code().String(), Err: err}
}
