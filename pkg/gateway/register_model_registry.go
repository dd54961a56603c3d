package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

func registerModelRegistry(d *Dispatcher, svc contracts.ModelRegistryServer) {
	if svc == nil {
		return
	}

	d.unary[contracts.MethodRegisterModel] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.RegisterModelRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.RegisterModel(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodUpdateModel] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.UpdateModelRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.UpdateModel(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodRemoveModel] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.RemoveModelRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.RemoveModel(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodListModels] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.ListModelsRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.ListModels(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodFindModel] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.FindModelRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.FindModel(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodUpdateModelStatus] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.UpdateModelStatusRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.UpdateModelStatus(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodHealthCheck] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.HealthCheckRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.HealthCheck(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}
}
