package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/contracts"
	"github.com/lspecian/intellirouter/pkg/mock"
	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

func TestDispatcher_InvokeRoutesToConfiguredService(t *testing.T) {
	router := mock.NewRouter()
	router.Route.Set("hello\x00", mock.Outcome[contracts.RouteRequestResponse]{
		Response: contracts.RouteRequestResponse{TargetModelID: "gpt-mini", Output: "hi"},
	})

	d := NewDispatcher(Services{Router: router})

	req := contracts.RouteRequestRequest{Input: "hello"}
	reqBytes, err := req.Marshal()
	require.NoError(t, err)

	respEnv, err := d.Invoke(context.Background(), contracts.MethodRouteRequest, wire.Envelope{CallEnvelope: types.CallEnvelope{Payload: reqBytes}})
	require.NoError(t, err)

	var resp contracts.RouteRequestResponse
	require.NoError(t, resp.Unmarshal(respEnv.Payload))
	assert.Equal(t, "gpt-mini", resp.TargetModelID)
	assert.Equal(t, "hi", resp.Output)
}

func TestDispatcher_InvokeUnknownMethodFails(t *testing.T) {
	d := NewDispatcher(Services{})

	_, err := d.Invoke(context.Background(), "Nonexistent.Method", wire.Envelope{})
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, types.FailureInvalidArgument, fail.Kind)
}

func TestDispatcher_InvokeNilServiceFailsLikeUnknownMethod(t *testing.T) {
	d := NewDispatcher(Services{})

	req := contracts.RouteRequestRequest{Input: "hello"}
	reqBytes, err := req.Marshal()
	require.NoError(t, err)

	_, err = d.Invoke(context.Background(), contracts.MethodRouteRequest, wire.Envelope{CallEnvelope: types.CallEnvelope{Payload: reqBytes}})
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, types.FailureInvalidArgument, fail.Kind)
}

func TestDispatcher_InvokeStreamDeliversScriptedChunksInOrder(t *testing.T) {
	router := mock.NewRouter()
	router.Stream.Set("route-me\x00", mock.StreamScript[contracts.RouteStreamChunk]{
		Events: []contracts.RouteStreamChunk{
			{TargetModelID: "gpt-mini", Chunk: "he"},
			{TargetModelID: "gpt-mini", Chunk: "llo", Final: true},
		},
	})

	d := NewDispatcher(Services{Router: router})

	req := contracts.RouteRequestRequest{Input: "route-me"}
	reqBytes, err := req.Marshal()
	require.NoError(t, err)

	var chunks []contracts.RouteStreamChunk
	err = d.InvokeStream(context.Background(), contracts.MethodStreamRoute, wire.Envelope{CallEnvelope: types.CallEnvelope{Payload: reqBytes}}, func(env wire.Envelope) error {
		var chunk contracts.RouteStreamChunk
		if unmarshalErr := chunk.Unmarshal(env.Payload); unmarshalErr != nil {
			return unmarshalErr
		}
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, chunks, 2)
	assert.Equal(t, "he", chunks[0].Chunk)
	assert.False(t, chunks[0].Final)
	assert.Equal(t, "llo", chunks[1].Chunk)
	assert.True(t, chunks[1].Final)
}

func TestDispatcher_DecodeFailureWrapsUnmarshalError(t *testing.T) {
	d := NewDispatcher(Services{ChainEngine: mock.NewChainEngine()})

	_, err := d.Invoke(context.Background(), contracts.MethodExecuteChain, wire.Envelope{CallEnvelope: types.CallEnvelope{Payload: []byte{0xff, 0xff, 0xff}}})
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, types.FailureSerialization, fail.Kind)
}
