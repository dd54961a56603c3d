package mock

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

// ModelRegistry is a deterministic contracts.ModelRegistryClient/Server.
type ModelRegistry struct {
	Register *Table[contracts.RegisterModelRequest, contracts.RegisterModelResponse]
	Update   *Table[contracts.UpdateModelRequest, contracts.UpdateModelResponse]
	Remove   *Table[contracts.RemoveModelRequest, contracts.RemoveModelResponse]
	List     *Table[contracts.ListModelsRequest, contracts.ListModelsResponse]
	Find     *Table[contracts.FindModelRequest, contracts.FindModelResponse]
	Status   *Table[contracts.UpdateModelStatusRequest, contracts.UpdateModelStatusResponse]
	Health   *Table[contracts.HealthCheckRequest, contracts.HealthCheckResponse]
}

func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{
		Register: NewTable(func(r contracts.RegisterModelRequest) string { return r.Model.ID },
			Outcome[contracts.RegisterModelResponse]{}),
		Update: NewTable(func(r contracts.UpdateModelRequest) string { return r.Model.ID },
			Outcome[contracts.UpdateModelResponse]{}),
		Remove: NewTable(func(r contracts.RemoveModelRequest) string { return r.ID },
			Outcome[contracts.RemoveModelResponse]{}),
		List: NewTable(func(r contracts.ListModelsRequest) string { return r.ProviderFilter },
			Outcome[contracts.ListModelsResponse]{}),
		Find: NewTable(func(r contracts.FindModelRequest) string { return r.ID },
			Outcome[contracts.FindModelResponse]{}),
		Status: NewTable(func(r contracts.UpdateModelStatusRequest) string { return r.ID },
			Outcome[contracts.UpdateModelStatusResponse]{}),
		Health: NewTable(func(r contracts.HealthCheckRequest) string { return r.ID },
			Outcome[contracts.HealthCheckResponse]{Response: contracts.HealthCheckResponse{Healthy: true}}),
	}
}

func (m *ModelRegistry) RegisterModel(ctx context.Context, req contracts.RegisterModelRequest) (contracts.RegisterModelResponse, error) {
	o := m.Register.Lookup(req)
	return o.Response, o.Err
}

func (m *ModelRegistry) UpdateModel(ctx context.Context, req contracts.UpdateModelRequest) (contracts.UpdateModelResponse, error) {
	o := m.Update.Lookup(req)
	return o.Response, o.Err
}

func (m *ModelRegistry) RemoveModel(ctx context.Context, req contracts.RemoveModelRequest) (contracts.RemoveModelResponse, error) {
	o := m.Remove.Lookup(req)
	return o.Response, o.Err
}

func (m *ModelRegistry) ListModels(ctx context.Context, req contracts.ListModelsRequest) (contracts.ListModelsResponse, error) {
	o := m.List.Lookup(req)
	return o.Response, o.Err
}

func (m *ModelRegistry) FindModel(ctx context.Context, req contracts.FindModelRequest) (contracts.FindModelResponse, error) {
	o := m.Find.Lookup(req)
	return o.Response, o.Err
}

func (m *ModelRegistry) UpdateModelStatus(ctx context.Context, req contracts.UpdateModelStatusRequest) (contracts.UpdateModelStatusResponse, error) {
	o := m.Status.Lookup(req)
	return o.Response, o.Err
}

func (m *ModelRegistry) HealthCheck(ctx context.Context, req contracts.HealthCheckRequest) (contracts.HealthCheckResponse, error) {
	o := m.Health.Lookup(req)
	return o.Response, o.Err
}

var (
	_ contracts.ModelRegistryClient = (*ModelRegistry)(nil)
	_ contracts.ModelRegistryServer = (*ModelRegistry)(nil)
)
