package mock

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

// ChainEngine is a deterministic contracts.ChainEngineClient (and
// contracts.ChainEngineServer, since the two surfaces are identical).
type ChainEngine struct {
	Execute *Table[contracts.ExecuteChainRequest, contracts.ExecuteChainResponse]
	Stream  *StreamTable[contracts.ExecuteChainRequest, contracts.ChainExecutionEvent]
	Status  *Table[contracts.GetExecutionStatusRequest, contracts.GetExecutionStatusResponse]
	Cancel  *Table[contracts.CancelExecutionRequest, contracts.CancelExecutionResponse]
}

// chainExecuteKey fingerprints on RequestID when the caller supplied one
// (ExecuteChain is a ClientKeyedWrite), falling back to the mutually
// exclusive ChainID/Definition plus Input otherwise.
func chainExecuteKey(r contracts.ExecuteChainRequest) string {
	if r.RequestID != "" {
		return r.RequestID
	}
	return r.ChainID + "\x00" + r.Definition + "\x00" + r.Input
}

// NewChainEngine builds a ChainEngine whose every table defaults to a
// zero-value response with a nil error; callers configure Set per fingerprint
// before exercising the mock.
func NewChainEngine() *ChainEngine {
	return &ChainEngine{
		Execute: NewTable(chainExecuteKey, Outcome[contracts.ExecuteChainResponse]{}),
		Stream: NewStreamTable(chainExecuteKey, StreamScript[contracts.ChainExecutionEvent]{}),
		Status: NewTable(func(r contracts.GetExecutionStatusRequest) string { return r.ExecutionID },
			Outcome[contracts.GetExecutionStatusResponse]{}),
		Cancel: NewTable(func(r contracts.CancelExecutionRequest) string { return r.ExecutionID },
			Outcome[contracts.CancelExecutionResponse]{}),
	}
}

func (m *ChainEngine) ExecuteChain(ctx context.Context, req contracts.ExecuteChainRequest) (contracts.ExecuteChainResponse, error) {
	o := m.Execute.Lookup(req)
	return o.Response, o.Err
}

func (m *ChainEngine) StreamChainExecution(ctx context.Context, req contracts.ExecuteChainRequest, onEvent func(contracts.ChainExecutionEvent) error) error {
	script := m.Stream.Lookup(req)
	for _, ev := range script.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onEvent(ev); err != nil {
			return err
		}
	}
	return script.Err
}

func (m *ChainEngine) GetExecutionStatus(ctx context.Context, req contracts.GetExecutionStatusRequest) (contracts.GetExecutionStatusResponse, error) {
	o := m.Status.Lookup(req)
	return o.Response, o.Err
}

func (m *ChainEngine) CancelExecution(ctx context.Context, req contracts.CancelExecutionRequest) (contracts.CancelExecutionResponse, error) {
	o := m.Cancel.Lookup(req)
	return o.Response, o.Err
}

var (
	_ contracts.ChainEngineClient = (*ChainEngine)(nil)
	_ contracts.ChainEngineServer = (*ChainEngine)(nil)
)
