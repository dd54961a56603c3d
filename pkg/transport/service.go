package transport

import (
	"context"

	"google.golang.org/grpc"

	"github.com/lspecian/intellirouter/pkg/wire"
)

// methodMetadataKey is the gRPC metadata key carrying the logical fabric
// method name (e.g. "ModelRegistry.FindModel") a call or stream targets.
const methodMetadataKey = "intellirouter-method"

// tokenMetadataKey carries the signed bearer token, mirroring the
// Authorization header convention used over HTTP.
const tokenMetadataKey = "authorization"

// serviceName is the gRPC service name every server registers under.
const serviceName = "intellirouter.Fabric"

// Dispatcher routes an already role-checked call to the handler registered
// for its logical method name. pkg/gateway implements this by fanning out
// to the contracts it hosts; ctx carries the validated types.AuthToken,
// retrievable with ContextAuthToken.
type Dispatcher interface {
	// Invoke handles a unary call.
	Invoke(ctx context.Context, method string, req wire.Envelope) (wire.Envelope, error)
	// InvokeStream handles a server-streaming call, sending each response
	// envelope via send until the request's results are exhausted.
	InvokeStream(ctx context.Context, method string, req wire.Envelope, send func(wire.Envelope) error) error
}

// RequiredRoles is consulted by the server's auth interceptor to decide
// which roles a method requires; pkg/gateway builds one of these from its
// contracts' declared role requirements.
type RequiredRoles interface {
	RolesFor(method string) []string
}

func fabricServiceDesc(s *Server) grpc.ServiceDesc {
	return grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "Invoke", Handler: s.invokeHandler},
		},
		Streams: []grpc.StreamDesc{
			{StreamName: "InvokeStream", Handler: s.invokeStreamHandler, ServerStreams: true},
		},
		Metadata: "pkg/transport",
	}
}

func (s *Server) invokeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	var req wire.Envelope
	if err := dec(&req); err != nil {
		return nil, err
	}
	info := &grpc.UnaryServerInfo{Server: s, FullMethod: "/" + serviceName + "/Invoke"}
	handler := func(ctx context.Context, reqIface interface{}) (interface{}, error) {
		env := reqIface.(*wire.Envelope)
		method, _ := methodFromContext(ctx)
		resp, err := s.dispatcher.Invoke(ctx, method, *env)
		if err != nil {
			return nil, err
		}
		return &resp, nil
	}
	if interceptor == nil {
		return handler(ctx, &req)
	}
	return interceptor(ctx, &req, info, handler)
}

func (s *Server) invokeStreamHandler(srv interface{}, stream grpc.ServerStream) error {
	var req wire.Envelope
	if err := stream.RecvMsg(&req); err != nil {
		return err
	}
	ctx := stream.Context()
	method, _ := methodFromContext(ctx)
	return s.dispatcher.InvokeStream(ctx, method, req, func(env wire.Envelope) error {
		return stream.SendMsg(&env)
	})
}
