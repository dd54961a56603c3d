package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/contracts"
	"github.com/lspecian/intellirouter/pkg/mock"
)

func TestChainEngine_ExecuteChainConfiguredOutcome(t *testing.T) {
	m := mock.NewChainEngine()
	req := contracts.ExecuteChainRequest{RequestID: "req-1", ChainID: "chain-a", Input: "hi"}
	m.Execute.Set("req-1", mock.Outcome[contracts.ExecuteChainResponse]{
		Response: contracts.ExecuteChainResponse{ExecutionID: "exec-1", Output: "hello"},
	})

	resp, err := m.ExecuteChain(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "exec-1", resp.ExecutionID)
	assert.Equal(t, "hello", resp.Output)
}

func TestChainEngine_UnknownRequestReturnsDefault(t *testing.T) {
	m := mock.NewChainEngine()
	resp, err := m.ExecuteChain(context.Background(), contracts.ExecuteChainRequest{RequestID: "never-configured"})
	require.NoError(t, err)
	assert.Zero(t, resp)
}

func TestChainEngine_StreamChainExecutionDeliversScriptInOrder(t *testing.T) {
	m := mock.NewChainEngine()
	req := contracts.ExecuteChainRequest{RequestID: "stream-1"}
	m.Stream.Set("stream-1", mock.StreamScript[contracts.ChainExecutionEvent]{
		Events: []contracts.ChainExecutionEvent{
			{ExecutionID: "exec-1", EventKind: "step", Payload: "one"},
			{ExecutionID: "exec-1", EventKind: "step", Payload: "two"},
		},
	})

	var got []string
	err := m.StreamChainExecution(context.Background(), req, func(ev contracts.ChainExecutionEvent) error {
		got = append(got, ev.Payload)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestChainEngine_StreamChainExecutionStopsOnConsumerError(t *testing.T) {
	m := mock.NewChainEngine()
	req := contracts.ExecuteChainRequest{RequestID: "stream-2"}
	m.Stream.Set("stream-2", mock.StreamScript[contracts.ChainExecutionEvent]{
		Events: []contracts.ChainExecutionEvent{
			{Payload: "one"},
			{Payload: "two"},
		},
	})

	boom := errors.New("boom")
	count := 0
	err := m.StreamChainExecution(context.Background(), req, func(ev contracts.ChainExecutionEvent) error {
		count++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count)
}

func TestChainEngine_StreamTerminatesWithConfiguredError(t *testing.T) {
	m := mock.NewChainEngine()
	req := contracts.ExecuteChainRequest{RequestID: "stream-3"}
	terminal := errors.New("remote aborted")
	m.Stream.Set("stream-3", mock.StreamScript[contracts.ChainExecutionEvent]{
		Events: []contracts.ChainExecutionEvent{{Payload: "only"}},
		Err:    terminal,
	})

	var delivered int
	err := m.StreamChainExecution(context.Background(), req, func(contracts.ChainExecutionEvent) error {
		delivered++
		return nil
	})
	assert.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, delivered)
}

func TestChainEngine_StreamRespectsCancellation(t *testing.T) {
	m := mock.NewChainEngine()
	req := contracts.ExecuteChainRequest{RequestID: "stream-4"}
	m.Stream.Set("stream-4", mock.StreamScript[contracts.ChainExecutionEvent]{
		Events: []contracts.ChainExecutionEvent{{Payload: "a"}, {Payload: "b"}},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var delivered int
	err := m.StreamChainExecution(ctx, req, func(contracts.ChainExecutionEvent) error {
		delivered++
		return nil
	})
	assert.Error(t, err)
	assert.Zero(t, delivered)
}

func TestModelRegistry_FindModelFingerprintsByID(t *testing.T) {
	m := mock.NewModelRegistry()
	m.Find.Set("gpt-x", mock.Outcome[contracts.FindModelResponse]{
		Response: contracts.FindModelResponse{Found: true},
	})

	resp, err := m.FindModel(context.Background(), contracts.FindModelRequest{ID: "gpt-x"})
	require.NoError(t, err)
	assert.True(t, resp.Found)

	resp, err = m.FindModel(context.Background(), contracts.FindModelRequest{ID: "unknown"})
	require.NoError(t, err)
	assert.False(t, resp.Found)
}

func TestModelRegistry_HealthCheckDefaultsHealthy(t *testing.T) {
	m := mock.NewModelRegistry()
	resp, err := m.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "any"})
	require.NoError(t, err)
	assert.True(t, resp.Healthy)
}

func TestRouter_StreamRouteDeliversInOrder(t *testing.T) {
	m := mock.NewRouter()
	req := contracts.RouteRequestRequest{Input: "hello", Strategy: "lowest-latency"}
	m.Stream.Set("hello\x00lowest-latency", mock.StreamScript[contracts.RouteStreamChunk]{
		Events: []contracts.RouteStreamChunk{
			{Chunk: "he"},
			{Chunk: "llo", Final: true},
		},
	})

	var chunks []string
	err := m.StreamRoute(context.Background(), req, func(c contracts.RouteStreamChunk) error {
		chunks = append(chunks, c.Chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"he", "llo"}, chunks)
}

func TestRAGManager_RetrieveFingerprintsOnFullRequest(t *testing.T) {
	m := mock.NewRAGManager()
	req := contracts.RetrieveRequest{Embedding: []float32{0, 0.5, 1}, TopK: 3}
	m.Retrieve.Set("[0 0.5 1]|3|map[]", mock.Outcome[contracts.RetrieveResponse]{
		Response: contracts.RetrieveResponse{Chunks: []contracts.RetrievedChunk{{DocumentID: "doc-1"}}},
	})

	resp, err := m.Retrieve(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Chunks, 1)
	assert.Equal(t, "doc-1", resp.Chunks[0].DocumentID)
}
