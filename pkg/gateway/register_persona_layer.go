package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

func registerPersonaLayer(d *Dispatcher, svc contracts.PersonaLayerServer) {
	if svc == nil {
		return
	}

	d.unary[contracts.MethodCreatePersona] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.CreatePersonaRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.CreatePersona(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodGetPersona] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.GetPersonaRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.GetPersona(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodUpdatePersona] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.UpdatePersonaRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.UpdatePersona(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodDeletePersona] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.DeletePersonaRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.DeletePersona(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodListPersonas] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.ListPersonasRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.ListPersonas(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}

	d.unary[contracts.MethodApplyPersona] = func(ctx context.Context, payload []byte) ([]byte, error) {
		var req contracts.ApplyPersonaRequest
		if err := req.Unmarshal(payload); err != nil {
			return nil, decodeFailure(err)
		}
		resp, err := svc.ApplyPersona(ctx, req)
		if err != nil {
			return nil, err
		}
		return resp.Marshal()
	}
}
