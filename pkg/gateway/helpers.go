package gateway

import "github.com/lspecian/intellirouter/pkg/types"

// decodeFailure wraps a request-decode error as a types.FailureSerialization
// IpcFailure, the taxonomy's designated home for malformed-payload errors.
func decodeFailure(err error) error {
	return types.NewFailure(types.FailureSerialization, "decode request payload", err)
}
