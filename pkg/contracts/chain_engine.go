package contracts

import (
	"context"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

// Chain Engine method names, used both as pkg/transport dispatch keys and as
// Roles lookup keys.
const (
	MethodExecuteChain         = "ChainEngine.ExecuteChain"
	MethodStreamChainExecution = "ChainEngine.StreamChainExecution"
	MethodGetExecutionStatus   = "ChainEngine.GetExecutionStatus"
	MethodCancelExecution      = "ChainEngine.CancelExecution"
)

// ChainEngineRoles declares the roles required by every Chain Engine
// operation.
var ChainEngineRoles = Roles{
	MethodExecuteChain:         {"execute_chain"},
	MethodStreamChainExecution: {"execute_chain"},
	MethodGetExecutionStatus:   {"view_chain_status"},
	MethodCancelExecution:      {"cancel_chain"},
}

// ExecuteChainRequest carries either ChainID (an existing, previously
// registered chain) or Definition (an inline chain body) — never both,
// never neither; that mutual exclusivity is validated by whichever
// implementation receives the request, not by the shape itself.
type ExecuteChainRequest struct {
	Context    types.RequestContext
	ChainID    string
	Definition string
	Input      string
	// RequestID makes this a client-id-keyed write (see IdempotenceClass);
	// the server deduplicates by this value.
	RequestID string
}

func (r ExecuteChainRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	ctxBytes, err := wire.MarshalRequestContext(r.Context)
	if err != nil {
		return nil, err
	}
	w.PutBytes(1, ctxBytes)
	w.PutString(2, r.ChainID)
	w.PutString(3, r.Definition)
	w.PutString(4, r.Input)
	w.PutString(5, r.RequestID)
	return w.Bytes(), nil
}

func (r *ExecuteChainRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			rc, err := wire.UnmarshalRequestContext(b)
			if err != nil {
				return err
			}
			r.Context = rc
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ChainID = s
		case 3:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Definition = s
		case 4:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Input = s
		case 5:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.RequestID = s
		}
		return nil
	})
}

// ExecuteChainResponse is the finite result of a non-streamed execution.
type ExecuteChainResponse struct {
	ExecutionID     string
	Output          string
	TotalTokens     int
	ExecutionTimeMS int
	Status          wire.Status
}

func (r ExecuteChainResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ExecutionID)
	w.PutString(2, r.Output)
	w.PutVarint(3, uint64(r.TotalTokens))
	w.PutVarint(4, uint64(r.ExecutionTimeMS))
	w.PutVarint(5, uint64(r.Status))
	return w.Bytes(), nil
}

func (r *ExecuteChainResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ExecutionID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Output = s
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.TotalTokens = int(u)
		case 4:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.ExecutionTimeMS = int(u)
		case 5:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Status = wire.Status(u)
		}
		return nil
	})
}

// ChainExecutionEvent is one item of a streamed chain execution: a step
// completion, a partial output chunk, or the terminal event.
type ChainExecutionEvent struct {
	ExecutionID string
	EventKind   string
	Payload     string
	Timestamp   time.Time
}

func (e ChainExecutionEvent) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, e.ExecutionID)
	w.PutString(2, e.EventKind)
	w.PutString(3, e.Payload)
	w.PutInt64(4, e.Timestamp.UnixNano())
	return w.Bytes(), nil
}

func (e *ChainExecutionEvent) Unmarshal(data []byte) error {
	var nano int64
	err := wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			e.ExecutionID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			e.EventKind = s
		case 3:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			e.Payload = s
		case 4:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			nano = int64(u)
		}
		return nil
	})
	if nano != 0 {
		e.Timestamp = time.Unix(0, nano).UTC()
	}
	return err
}

// GetExecutionStatusRequest/Response and CancelExecutionRequest/Response
// are small enough that a shared two/one-string shape below each would add
// indirection without reducing code; they stay explicit.

type GetExecutionStatusRequest struct {
	ExecutionID string
}

func (r GetExecutionStatusRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ExecutionID)
	return w.Bytes(), nil
}

func (r *GetExecutionStatusRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ExecutionID = s
		}
		return nil
	})
}

type GetExecutionStatusResponse struct {
	ExecutionID string
	Status      wire.Status
	Detail      string
}

func (r GetExecutionStatusResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ExecutionID)
	w.PutVarint(2, uint64(r.Status))
	w.PutString(3, r.Detail)
	return w.Bytes(), nil
}

func (r *GetExecutionStatusResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ExecutionID = s
		case 2:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Status = wire.Status(u)
		case 3:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Detail = s
		}
		return nil
	})
}

type CancelExecutionRequest struct {
	ExecutionID string
}

func (r CancelExecutionRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ExecutionID)
	return w.Bytes(), nil
}

func (r *CancelExecutionRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ExecutionID = s
		}
		return nil
	})
}

type CancelExecutionResponse struct {
	Cancelled bool
}

func (r CancelExecutionResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Cancelled {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *CancelExecutionResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Cancelled = u != 0
		}
		return nil
	})
}

// ChainEngineClient is the consumer-facing surface: execute a chain
// (finite or streamed), inspect status, cancel.
type ChainEngineClient interface {
	ExecuteChain(ctx context.Context, req ExecuteChainRequest) (ExecuteChainResponse, error)
	StreamChainExecution(ctx context.Context, req ExecuteChainRequest, onEvent func(ChainExecutionEvent) error) error
	GetExecutionStatus(ctx context.Context, req GetExecutionStatusRequest) (GetExecutionStatusResponse, error)
	CancelExecution(ctx context.Context, req CancelExecutionRequest) (CancelExecutionResponse, error)
}

// ChainEngineServer is the implementer-facing surface; its method set
// mirrors ChainEngineClient exactly, since the contract is what's
// polymorphic, not the operations themselves.
type ChainEngineServer interface {
	ExecuteChain(ctx context.Context, req ExecuteChainRequest) (ExecuteChainResponse, error)
	StreamChainExecution(ctx context.Context, req ExecuteChainRequest, onEvent func(ChainExecutionEvent) error) error
	GetExecutionStatus(ctx context.Context, req GetExecutionStatusRequest) (GetExecutionStatusResponse, error)
	CancelExecution(ctx context.Context, req CancelExecutionRequest) (CancelExecutionResponse, error)
}
