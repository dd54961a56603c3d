package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/resilience"
	"github.com/lspecian/intellirouter/pkg/transport"
	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

// callClient adapts a transport.Client's generic byte-payload Call/
// CallStream into typed wire.Message request/response pairs, wrapping each
// attempt in a resilience.Policy. unaryPolicy and streamPolicy are kept
// separate because retrying a partially-delivered stream from scratch
// would duplicate already-observed items; the zero value of streamPolicy
// (no Retry) is deliberately the safer default for FabricClient.
type callClient struct {
	conn         *transport.Client
	token        func() string
	unaryPolicy  resilience.Policy
	streamPolicy resilience.Policy
}

func (c *callClient) unary(ctx context.Context, method string, req, resp wire.Message) error {
	reqBytes, err := req.Marshal()
	if err != nil {
		return types.NewFailure(types.FailureSerialization, "encode request payload", err)
	}

	var respEnv types.CallEnvelope
	op := func(ctx context.Context) error {
		env, callErr := c.conn.Call(ctx, method, c.token(), types.CallEnvelope{Payload: reqBytes})
		if callErr != nil {
			return callErr
		}
		respEnv = env
		return nil
	}
	if err := resilience.Resilient(ctx, c.unaryPolicy, op); err != nil {
		return err
	}
	if len(respEnv.Payload) == 0 {
		return nil
	}
	return resp.Unmarshal(respEnv.Payload)
}

func (c *callClient) stream(ctx context.Context, method string, req wire.Message, onItem func([]byte) error) error {
	reqBytes, err := req.Marshal()
	if err != nil {
		return types.NewFailure(types.FailureSerialization, "encode request payload", err)
	}

	op := func(ctx context.Context) error {
		return c.conn.CallStream(ctx, method, c.token(), types.CallEnvelope{Payload: reqBytes}, func(env types.CallEnvelope) error {
			return onItem(env.Payload)
		})
	}
	return resilience.Resilient(ctx, c.streamPolicy, op)
}

// wire.Envelope satisfies wire.Message so both unary and stream share one
// decode path regardless of which concrete request/response type is used.
var _ wire.Message = (*wire.Envelope)(nil)
