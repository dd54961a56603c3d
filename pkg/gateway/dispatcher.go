package gateway

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/contracts"
	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

// unaryHandler decodes a request payload, invokes the bound contract
// operation, and encodes its response payload.
type unaryHandler func(ctx context.Context, payload []byte) ([]byte, error)

// streamHandler is unaryHandler's server-streaming counterpart: send is
// called once per response item, in order, until the operation returns.
type streamHandler func(ctx context.Context, payload []byte, send func([]byte) error) error

// Services bundles one implementation of each service contract's server
// surface. Any combination of live, mock, or in-memory implementations is
// accepted — Dispatcher depends only on the contracts interfaces.
type Services struct {
	ChainEngine   contracts.ChainEngineServer
	ModelRegistry contracts.ModelRegistryServer
	Memory        contracts.MemoryServer
	RAGManager    contracts.RAGManagerServer
	PersonaLayer  contracts.PersonaLayerServer
	Router        contracts.RouterServer
}

// Dispatcher implements transport.Dispatcher, routing by the logical
// method name pkg/transport extracts from the call's metadata to the
// handler registered for it in Services.
type Dispatcher struct {
	unary  map[string]unaryHandler
	stream map[string]streamHandler
}

// NewDispatcher builds a Dispatcher over svc. Services intentionally
// allows partial hosting (e.g. a gateway that only hosts Model Registry
// and Router): a service left nil simply registers no handlers for its
// methods, so calling one of them fails the same way an unknown method
// name would.
func NewDispatcher(svc Services) *Dispatcher {
	d := &Dispatcher{
		unary:  make(map[string]unaryHandler),
		stream: make(map[string]streamHandler),
	}
	registerChainEngine(d, svc.ChainEngine)
	registerModelRegistry(d, svc.ModelRegistry)
	registerMemory(d, svc.Memory)
	registerRAGManager(d, svc.RAGManager)
	registerPersonaLayer(d, svc.PersonaLayer)
	registerRouter(d, svc.Router)
	return d
}

func (d *Dispatcher) Invoke(ctx context.Context, method string, req wire.Envelope) (wire.Envelope, error) {
	h, ok := d.unary[method]
	if !ok {
		return wire.Envelope{}, types.NewFailure(types.FailureInvalidArgument, "unknown method: "+method, nil)
	}
	respBytes, err := h(ctx, req.Payload)
	if err != nil {
		return wire.Envelope{}, err
	}
	return wire.Envelope{CallEnvelope: types.CallEnvelope{Payload: respBytes}}, nil
}

func (d *Dispatcher) InvokeStream(ctx context.Context, method string, req wire.Envelope, send func(wire.Envelope) error) error {
	h, ok := d.stream[method]
	if !ok {
		return types.NewFailure(types.FailureInvalidArgument, "unknown streaming method: "+method, nil)
	}
	return h(ctx, req.Payload, func(payload []byte) error {
		return send(wire.Envelope{CallEnvelope: types.CallEnvelope{Payload: payload}})
	})
}
