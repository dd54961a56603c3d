package contracts

import (
	"context"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/lspecian/intellirouter/pkg/wire"
)

const (
	MethodRegisterModel     = "ModelRegistry.RegisterModel"
	MethodUpdateModel       = "ModelRegistry.UpdateModel"
	MethodRemoveModel       = "ModelRegistry.RemoveModel"
	MethodListModels        = "ModelRegistry.ListModels"
	MethodFindModel         = "ModelRegistry.FindModel"
	MethodUpdateModelStatus = "ModelRegistry.UpdateModelStatus"
	MethodHealthCheck       = "ModelRegistry.HealthCheck"
)

// ModelRegistryRoles declares the roles required by every Model Registry
// operation: mutation requires manage_models, read-only operations require
// the lighter view_models.
var ModelRegistryRoles = Roles{
	MethodRegisterModel:     {"manage_models"},
	MethodUpdateModel:       {"manage_models"},
	MethodRemoveModel:       {"manage_models"},
	MethodListModels:        {"view_models"},
	MethodFindModel:         {"view_models"},
	MethodUpdateModelStatus: {"manage_models"},
	MethodHealthCheck:       {"view_models"},
}

type RegisterModelRequest struct {
	Model wire.ModelInfoV2
}

func (r RegisterModelRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if err := w.PutMessage(1, &r.Model); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (r *RegisterModelRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			return r.Model.Unmarshal(b)
		}
		return nil
	})
}

type RegisterModelResponse struct {
	ID string
}

func (r RegisterModelResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ID)
	return w.Bytes(), nil
}

func (r *RegisterModelResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ID = s
		}
		return nil
	})
}

// UpdateModelRequest/Response reuse RegisterModel's shapes: an update is a
// register keyed by an ID the model already carries.
type UpdateModelRequest = RegisterModelRequest
type UpdateModelResponse struct {
	Updated bool
}

func (r UpdateModelResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Updated {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *UpdateModelResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Updated = u != 0
		}
		return nil
	})
}

type RemoveModelRequest struct {
	ID string
}

func (r RemoveModelRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ID)
	return w.Bytes(), nil
}

func (r *RemoveModelRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ID = s
		}
		return nil
	})
}

type RemoveModelResponse struct {
	Removed bool
}

func (r RemoveModelResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Removed {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *RemoveModelResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Removed = u != 0
		}
		return nil
	})
}

// ListModelsRequest filters by provider; empty matches every model.
type ListModelsRequest struct {
	ProviderFilter string
}

func (r ListModelsRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ProviderFilter)
	return w.Bytes(), nil
}

func (r *ListModelsRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ProviderFilter = s
		}
		return nil
	})
}

type ListModelsResponse struct {
	Models []wire.ModelInfoV2
}

func (r ListModelsResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, m := range r.Models {
		if err := w.PutMessage(1, &m); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (r *ListModelsResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var m wire.ModelInfoV2
			if err := m.Unmarshal(b); err != nil {
				return err
			}
			r.Models = append(r.Models, m)
		}
		return nil
	})
}

type FindModelRequest struct {
	ID string
}

func (r FindModelRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ID)
	return w.Bytes(), nil
}

func (r *FindModelRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ID = s
		}
		return nil
	})
}

type FindModelResponse struct {
	Model wire.ModelInfoV2
	Found bool
}

func (r FindModelResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if err := w.PutMessage(1, &r.Model); err != nil {
		return nil, err
	}
	if r.Found {
		w.PutVarint(2, 1)
	}
	return w.Bytes(), nil
}

func (r *FindModelResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			return r.Model.Unmarshal(b)
		case 2:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Found = u != 0
		}
		return nil
	})
}

type UpdateModelStatusRequest struct {
	ID     string
	Status string
}

func (r UpdateModelStatusRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ID)
	w.PutString(2, r.Status)
	return w.Bytes(), nil
}

func (r *UpdateModelStatusRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Status = s
		}
		return nil
	})
}

type UpdateModelStatusResponse struct {
	Updated bool
}

func (r UpdateModelStatusResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Updated {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *UpdateModelStatusResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Updated = u != 0
		}
		return nil
	})
}

type HealthCheckRequest struct {
	ID string
}

func (r HealthCheckRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ID)
	return w.Bytes(), nil
}

func (r *HealthCheckRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.ID = s
		}
		return nil
	})
}

type HealthCheckResponse struct {
	Healthy bool
	Detail  string
}

func (r HealthCheckResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Healthy {
		w.PutVarint(1, 1)
	}
	w.PutString(2, r.Detail)
	return w.Bytes(), nil
}

func (r *HealthCheckResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Healthy = u != 0
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Detail = s
		}
		return nil
	})
}

// ModelRegistryClient is the consumer-facing Model Registry surface.
type ModelRegistryClient interface {
	RegisterModel(ctx context.Context, req RegisterModelRequest) (RegisterModelResponse, error)
	UpdateModel(ctx context.Context, req UpdateModelRequest) (UpdateModelResponse, error)
	RemoveModel(ctx context.Context, req RemoveModelRequest) (RemoveModelResponse, error)
	ListModels(ctx context.Context, req ListModelsRequest) (ListModelsResponse, error)
	FindModel(ctx context.Context, req FindModelRequest) (FindModelResponse, error)
	UpdateModelStatus(ctx context.Context, req UpdateModelStatusRequest) (UpdateModelStatusResponse, error)
	HealthCheck(ctx context.Context, req HealthCheckRequest) (HealthCheckResponse, error)
}

// ModelRegistryServer is the implementer-facing Model Registry surface.
type ModelRegistryServer interface {
	RegisterModel(ctx context.Context, req RegisterModelRequest) (RegisterModelResponse, error)
	UpdateModel(ctx context.Context, req UpdateModelRequest) (UpdateModelResponse, error)
	RemoveModel(ctx context.Context, req RemoveModelRequest) (RemoveModelResponse, error)
	ListModels(ctx context.Context, req ListModelsRequest) (ListModelsResponse, error)
	FindModel(ctx context.Context, req FindModelRequest) (FindModelResponse, error)
	UpdateModelStatus(ctx context.Context, req UpdateModelStatusRequest) (UpdateModelStatusResponse, error)
	HealthCheck(ctx context.Context, req HealthCheckRequest) (HealthCheckResponse, error)
}
