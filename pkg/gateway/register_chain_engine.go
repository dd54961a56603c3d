package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

func registerChainEngine(d *Dispatcher, svc contracts.ChainEngineServer) {
	if svc == nil {
		return
	}

	d.unary[contracts.MethodExecuteChain] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.ExecuteChainRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.ExecuteChain(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodGetExecutionStatus] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.GetExecutionStatusRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.GetExecutionStatus(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodCancelExecution] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.CancelExecutionRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.CancelExecution(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.stream[contracts.MethodStreamChainExecution] = func(ctx context.Context, payload []byte, send func([]byte) error) error {
		var req contracts.ExecuteChainRequest
		if err := req.Unmarshal(payload); err != nil {
			return decodeFailure(err)
		}
		return svc.StreamChainExecution(ctx, req, func(ev contracts.ChainExecutionEvent) error {
			b, err := ev.Marshal()
			if err != nil {
				return err
			}
			return send(b)
		})
	}
}
