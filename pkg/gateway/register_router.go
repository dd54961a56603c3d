package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

func registerRouter(d *Dispatcher, svc contracts.RouterServer) {
	if svc == nil {
		return
	}

	d.unary[contracts.MethodRouteRequest] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.RouteRequestRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.RouteRequest(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodListStrategies] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.ListStrategiesRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.ListStrategies(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodUpdateStrategy] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.UpdateStrategyRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.UpdateStrategy(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.stream[contracts.MethodStreamRoute] = func(ctx context.Context, payload []byte, send func([]byte) error) error {
		var req contracts.RouteRequestRequest
		if err := req.Unmarshal(payload); err != nil {
			return decodeFailure(err)
		}
		return svc.StreamRoute(ctx, req, func(chunk contracts.RouteStreamChunk) error {
			b, err := chunk.Marshal()
			if err != nil {
				return err
			}
			return send(b)
		})
	}
}
