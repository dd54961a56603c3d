package contracts

import (
	"context"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/lspecian/intellirouter/pkg/wire"
)

const (
	MethodCreatePersona = "PersonaLayer.CreatePersona"
	MethodGetPersona    = "PersonaLayer.GetPersona"
	MethodUpdatePersona = "PersonaLayer.UpdatePersona"
	MethodDeletePersona = "PersonaLayer.DeletePersona"
	MethodListPersonas  = "PersonaLayer.ListPersonas"
	MethodApplyPersona  = "PersonaLayer.ApplyPersona"
)

// PersonaLayerRoles declares the roles required by every Persona Layer
// operation.
var PersonaLayerRoles = Roles{
	MethodCreatePersona: {"manage_personas"},
	MethodGetPersona:    {"view_personas"},
	MethodUpdatePersona: {"manage_personas"},
	MethodDeletePersona: {"manage_personas"},
	MethodListPersonas:  {"view_personas"},
	MethodApplyPersona:  {"apply_persona"},
}

// Persona is the shape shared by CreatePersonaRequest/GetPersonaResponse/
// UpdatePersonaRequest.
type Persona struct {
	ID           string
	Name         string
	SystemPrompt string
	Traits       map[string]string
}

func (p Persona) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, p.ID)
	w.PutString(2, p.Name)
	w.PutString(3, p.SystemPrompt)
	for k, v := range p.Traits {
		pair := metadataPair{key: k, value: v}
		b, err := pair.Marshal()
		if err != nil {
			return nil, err
		}
		w.PutBytes(4, b)
	}
	return w.Bytes(), nil
}

func (p *Persona) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			p.ID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			p.Name = s
		case 3:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			p.SystemPrompt = s
		case 4:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var pair metadataPair
			if err := pair.Unmarshal(b); err != nil {
				return err
			}
			if p.Traits == nil {
				p.Traits = make(map[string]string)
			}
			p.Traits[pair.key] = pair.value
		}
		return nil
	})
}

type CreatePersonaRequest struct {
	Persona   Persona
	RequestID string
}

func (r CreatePersonaRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if err := w.PutMessage(1, &r.Persona); err != nil {
		return nil, err
	}
	w.PutString(2, r.RequestID)
	return w.Bytes(), nil
}

func (r *CreatePersonaRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			return r.Persona.Unmarshal(b)
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.RequestID = s
		}
		return nil
	})
}

type CreatePersonaResponse struct {
	ID string
}

func (r CreatePersonaResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ID)
	return w.Bytes(), nil
}

func (r *CreatePersonaResponse) Unmarshal(data []byte) error {
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

type GetPersonaRequest struct {
	ID string
}

func (r GetPersonaRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ID)
	return w.Bytes(), nil
}

func (r *GetPersonaRequest) Unmarshal(data []byte) error {
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

type GetPersonaResponse struct {
	Persona Persona
	Found   bool
}

func (r GetPersonaResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if err := w.PutMessage(1, &r.Persona); err != nil {
		return nil, err
	}
	if r.Found {
		w.PutVarint(2, 1)
	}
	return w.Bytes(), nil
}

func (r *GetPersonaResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			return r.Persona.Unmarshal(b)
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

type UpdatePersonaRequest struct {
	Persona Persona
}

func (r UpdatePersonaRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if err := w.PutMessage(1, &r.Persona); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (r *UpdatePersonaRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			return r.Persona.Unmarshal(b)
		}
		return nil
	})
}

type UpdatePersonaResponse struct {
	Updated bool
}

func (r UpdatePersonaResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Updated {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *UpdatePersonaResponse) Unmarshal(data []byte) error {
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

type DeletePersonaRequest struct {
	ID string
}

func (r DeletePersonaRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.ID)
	return w.Bytes(), nil
}

func (r *DeletePersonaRequest) Unmarshal(data []byte) error {
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

type DeletePersonaResponse struct {
	Deleted bool
}

func (r DeletePersonaResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Deleted {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *DeletePersonaResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			r.Deleted = u != 0
		}
		return nil
	})
}

type ListPersonasRequest struct{}

func (r ListPersonasRequest) Marshal() ([]byte, error) { return nil, nil }
func (r *ListPersonasRequest) Unmarshal([]byte) error  { return nil }

type ListPersonasResponse struct {
	Personas []Persona
}

func (r ListPersonasResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, p := range r.Personas {
		if err := w.PutMessage(1, &p); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func (r *ListPersonasResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			b, err := wire.ConsumeBytes(v)
			if err != nil {
				return err
			}
			var p Persona
			if err := p.Unmarshal(b); err != nil {
				return err
			}
			r.Personas = append(r.Personas, p)
		}
		return nil
	})
}

// ApplyPersonaRequest rewrites Input per the named persona's system prompt
// and traits.
type ApplyPersonaRequest struct {
	PersonaID string
	Input     string
}

func (r ApplyPersonaRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.PersonaID)
	w.PutString(2, r.Input)
	return w.Bytes(), nil
}

func (r *ApplyPersonaRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.PersonaID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Input = s
		}
		return nil
	})
}

type ApplyPersonaResponse struct {
	Output string
}

func (r ApplyPersonaResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.Output)
	return w.Bytes(), nil
}

func (r *ApplyPersonaResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Output = s
		}
		return nil
	})
}

// PersonaLayerClient is the consumer-facing Persona Layer surface.
type PersonaLayerClient interface {
	CreatePersona(ctx context.Context, req CreatePersonaRequest) (CreatePersonaResponse, error)
	GetPersona(ctx context.Context, req GetPersonaRequest) (GetPersonaResponse, error)
	UpdatePersona(ctx context.Context, req UpdatePersonaRequest) (UpdatePersonaResponse, error)
	DeletePersona(ctx context.Context, req DeletePersonaRequest) (DeletePersonaResponse, error)
	ListPersonas(ctx context.Context, req ListPersonasRequest) (ListPersonasResponse, error)
	ApplyPersona(ctx context.Context, req ApplyPersonaRequest) (ApplyPersonaResponse, error)
}

// PersonaLayerServer is the implementer-facing Persona Layer surface.
type PersonaLayerServer interface {
	CreatePersona(ctx context.Context, req CreatePersonaRequest) (CreatePersonaResponse, error)
	GetPersona(ctx context.Context, req GetPersonaRequest) (GetPersonaResponse, error)
	UpdatePersona(ctx context.Context, req UpdatePersonaRequest) (UpdatePersonaResponse, error)
	DeletePersona(ctx context.Context, req DeletePersonaRequest) (DeletePersonaResponse, error)
	ListPersonas(ctx context.Context, req ListPersonasRequest) (ListPersonasResponse, error)
	ApplyPersona(ctx context.Context, req ApplyPersonaRequest) (ApplyPersonaResponse, error)
}
