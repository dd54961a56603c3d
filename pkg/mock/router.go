package mock

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

// Router is a deterministic contracts.RouterClient/Server.
type Router struct {
	Route     *Table[contracts.RouteRequestRequest, contracts.RouteRequestResponse]
	Stream    *StreamTable[contracts.RouteRequestRequest, contracts.RouteStreamChunk]
	Strategies *Table[contracts.ListStrategiesRequest, contracts.ListStrategiesResponse]
	Update    *Table[contracts.UpdateStrategyRequest, contracts.UpdateStrategyResponse]
}

func routeRequestKey(r contracts.RouteRequestRequest) string {
	if r.Context.RequestID != "" {
		return r.Context.RequestID
	}
	return r.Input + "\x00" + r.Strategy
}

func NewRouter() *Router {
	return &Router{
		Route:  NewTable(routeRequestKey, Outcome[contracts.RouteRequestResponse]{}),
		Stream: NewStreamTable(routeRequestKey, StreamScript[contracts.RouteStreamChunk]{}),
		Strategies: NewTable(func(contracts.ListStrategiesRequest) string { return "" },
			Outcome[contracts.ListStrategiesResponse]{}),
		Update: NewTable(func(r contracts.UpdateStrategyRequest) string { return r.Strategy },
			Outcome[contracts.UpdateStrategyResponse]{}),
	}
}

func (m *Router) RouteRequest(ctx context.Context, req contracts.RouteRequestRequest) (contracts.RouteRequestResponse, error) {
	o := m.Route.Lookup(req)
	return o.Response, o.Err
}

func (m *Router) StreamRoute(ctx context.Context, req contracts.RouteRequestRequest, onChunk func(contracts.RouteStreamChunk) error) error {
	script := m.Stream.Lookup(req)
	for _, ev := range script.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onChunk(ev); err != nil {
			return err
		}
	}
	return script.Err
}

func (m *Router) ListStrategies(ctx context.Context, req contracts.ListStrategiesRequest) (contracts.ListStrategiesResponse, error) {
	o := m.Strategies.Lookup(req)
	return o.Response, o.Err
}

func (m *Router) UpdateStrategy(ctx context.Context, req contracts.UpdateStrategyRequest) (contracts.UpdateStrategyResponse, error) {
	o := m.Update.Lookup(req)
	return o.Response, o.Err
}

var (
	_ contracts.RouterClient = (*Router)(nil)
	_ contracts.RouterServer = (*Router)(nil)
)
