package mock

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

// PersonaLayer is a deterministic contracts.PersonaLayerClient/Server.
type PersonaLayer struct {
	Create *Table[contracts.CreatePersonaRequest, contracts.CreatePersonaResponse]
	Get    *Table[contracts.GetPersonaRequest, contracts.GetPersonaResponse]
	Update *Table[contracts.UpdatePersonaRequest, contracts.UpdatePersonaResponse]
	Delete *Table[contracts.DeletePersonaRequest, contracts.DeletePersonaResponse]
	List   *Table[contracts.ListPersonasRequest, contracts.ListPersonasResponse]
	Apply  *Table[contracts.ApplyPersonaRequest, contracts.ApplyPersonaResponse]
}

func createPersonaKey(r contracts.CreatePersonaRequest) string {
	if r.RequestID != "" {
		return r.RequestID
	}
	return r.Persona.ID
}

func NewPersonaLayer() *PersonaLayer {
	return &PersonaLayer{
		Create: NewTable(createPersonaKey, Outcome[contracts.CreatePersonaResponse]{}),
		Get: NewTable(func(r contracts.GetPersonaRequest) string { return r.ID },
			Outcome[contracts.GetPersonaResponse]{}),
		Update: NewTable(func(r contracts.UpdatePersonaRequest) string { return r.Persona.ID },
			Outcome[contracts.UpdatePersonaResponse]{}),
		Delete: NewTable(func(r contracts.DeletePersonaRequest) string { return r.ID },
			Outcome[contracts.DeletePersonaResponse]{}),
		List: NewTable(func(contracts.ListPersonasRequest) string { return "" },
			Outcome[contracts.ListPersonasResponse]{}),
		Apply: NewTable(func(r contracts.ApplyPersonaRequest) string { return r.PersonaID + "\x00" + r.Input },
			Outcome[contracts.ApplyPersonaResponse]{}),
	}
}

func (m *PersonaLayer) CreatePersona(ctx context.Context, req contracts.CreatePersonaRequest) (contracts.CreatePersonaResponse, error) {
	o := m.Create.Lookup(req)
	return o.Response, o.Err
}

func (m *PersonaLayer) GetPersona(ctx context.Context, req contracts.GetPersonaRequest) (contracts.GetPersonaResponse, error) {
	o := m.Get.Lookup(req)
	return o.Response, o.Err
}

func (m *PersonaLayer) UpdatePersona(ctx context.Context, req contracts.UpdatePersonaRequest) (contracts.UpdatePersonaResponse, error) {
	o := m.Update.Lookup(req)
	return o.Response, o.Err
}

func (m *PersonaLayer) DeletePersona(ctx context.Context, req contracts.DeletePersonaRequest) (contracts.DeletePersonaResponse, error) {
	o := m.Delete.Lookup(req)
	return o.Response, o.Err
}

func (m *PersonaLayer) ListPersonas(ctx context.Context, req contracts.ListPersonasRequest) (contracts.ListPersonasResponse, error) {
	o := m.List.Lookup(req)
	return o.Response, o.Err
}

func (m *PersonaLayer) ApplyPersona(ctx context.Context, req contracts.ApplyPersonaRequest) (contracts.ApplyPersonaResponse, error) {
	o := m.Apply.Lookup(req)
	return o.Response, o.Err
}

var (
	_ contracts.PersonaLayerClient = (*PersonaLayer)(nil)
	_ contracts.PersonaLayerServer = (*PersonaLayer)(nil)
)
