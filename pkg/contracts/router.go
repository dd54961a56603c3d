package contracts

import (
	"context"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

// Router method names, used both as pkg/transport dispatch keys and as
// Roles lookup keys.
const (
	MethodRouteRequest   = "Router.RouteRequest"
	MethodStreamRoute    = "Router.StreamRoute"
	MethodListStrategies = "Router.ListStrategies"
	MethodUpdateStrategy = "Router.UpdateStrategy"
)

// RouterRoles declares the roles required by every Router operation.
var RouterRoles = Roles{
	MethodRouteRequest:   {"route_requests"},
	MethodStreamRoute:    {"route_requests"},
	MethodListStrategies: {"view_routing_strategy"},
	MethodUpdateStrategy: {"manage_routing_strategy"},
}

// RouteRequestRequest asks the Router to pick a target model for Input
// under the named Strategy (empty means the Router's currently active
// strategy).
type RouteRequestRequest struct {
	Context  types.RequestContext
	Input    string
	Strategy string
}

func (r RouteRequestRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	ctxBytes, err := wire.MarshalRequestContext(r.Context)
	if err != nil {
		return nil, err
	}
	w.PutBytes(1, ctxBytes)
	w.PutString(2, r.Input)
	w.PutString(3, r.Strategy)
	return w.Bytes(), nil
}

func (r *RouteRequestRequest) Unmarshal(data []byte) error {
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
			r.Input = s
		case 3:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Strategy = s
		}
		return nil
	})
}

type RouteRequestResponse struct {
	TargetModelID string
	Output        string
}

func (r RouteRequestResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.TargetModelID)
	w.PutString(2, r.Output)
	return w.Bytes(), nil
}

func (r *RouteRequestResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.TargetModelID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Output = s
		}
		return nil
	})
}

// RouteStreamChunk is one item of a streamed routing response.
type RouteStreamChunk struct {
	TargetModelID string
	Chunk         string
	Final         bool
}

func (c RouteStreamChunk) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, c.TargetModelID)
	w.PutString(2, c.Chunk)
	if c.Final {
		w.PutVarint(3, 1)
	}
	return w.Bytes(), nil
}

func (c *RouteStreamChunk) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			c.TargetModelID = s
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			c.Chunk = s
		case 3:
			u, err := wire.ConsumeVarint(v)
			if err != nil {
				return err
			}
			c.Final = u != 0
		}
		return nil
	})
}

type ListStrategiesRequest struct{}

func (r ListStrategiesRequest) Marshal() ([]byte, error) { return nil, nil }
func (r *ListStrategiesRequest) Unmarshal([]byte) error  { return nil }

type ListStrategiesResponse struct {
	Strategies []string
	Active     string
}

func (r ListStrategiesResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	for _, s := range r.Strategies {
		w.PutString(1, s)
	}
	w.PutString(2, r.Active)
	return w.Bytes(), nil
}

func (r *ListStrategiesResponse) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch num {
		case 1:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Strategies = append(r.Strategies, s)
		case 2:
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Active = s
		}
		return nil
	})
}

type UpdateStrategyRequest struct {
	Strategy string
}

func (r UpdateStrategyRequest) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	w.PutString(1, r.Strategy)
	return w.Bytes(), nil
}

func (r *UpdateStrategyRequest) Unmarshal(data []byte) error {
	return wire.WalkFields(data, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num == 1 {
			s, err := wire.ConsumeString(v)
			if err != nil {
				return err
			}
			r.Strategy = s
		}
		return nil
	})
}

type UpdateStrategyResponse struct {
	Updated bool
}

func (r UpdateStrategyResponse) Marshal() ([]byte, error) {
	w := wire.FieldWriter{}
	if r.Updated {
		w.PutVarint(1, 1)
	}
	return w.Bytes(), nil
}

func (r *UpdateStrategyResponse) Unmarshal(data []byte) error {
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

// RouterClient is the consumer-facing surface: route a request (finite or
// streamed), enumerate available strategies, switch the active one.
type RouterClient interface {
	RouteRequest(ctx context.Context, req RouteRequestRequest) (RouteRequestResponse, error)
	StreamRoute(ctx context.Context, req RouteRequestRequest, onChunk func(RouteStreamChunk) error) error
	ListStrategies(ctx context.Context, req ListStrategiesRequest) (ListStrategiesResponse, error)
	UpdateStrategy(ctx context.Context, req UpdateStrategyRequest) (UpdateStrategyResponse, error)
}

// RouterServer is the implementer-facing surface; its method set mirrors
// RouterClient exactly.
type RouterServer interface {
	RouteRequest(ctx context.Context, req RouteRequestRequest) (RouteRequestResponse, error)
	StreamRoute(ctx context.Context, req RouteRequestRequest, onChunk func(RouteStreamChunk) error) error
	ListStrategies(ctx context.Context, req ListStrategiesRequest) (ListStrategiesResponse, error)
	UpdateStrategy(ctx context.Context, req UpdateStrategyRequest) (UpdateStrategyResponse, error)
}
