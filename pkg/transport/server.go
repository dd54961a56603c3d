package transport

import (
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/lspecian/intellirouter/pkg/security"
	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

func init() {
	wire.RegisterGRPCCodec()
}

// ServerConfig configures a transport Server.
type ServerConfig struct {
	Trust      types.TrustMaterial
	ServerName string
	Tokens     *security.TokenService
	Authorizer *security.Authorizer
	Roles      RequiredRoles
	Dispatcher Dispatcher
}

// Server hosts the fabric's single gRPC service over mutual TLS.
type Server struct {
	grpc       *grpc.Server
	dispatcher Dispatcher
}

// NewServer builds a Server requiring mutual TLS (per security.
// ServerTLSConfig) and wraps every call in a token+role check ahead of
// cfg.Dispatcher.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Dispatcher == nil {
		return nil, fmt.Errorf("intellirouter/transport: dispatcher is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("intellirouter/transport: token service is required")
	}

	tlsConfig, err := security.ServerTLSConfig(cfg.Trust, cfg.ServerName)
	if err != nil {
		return nil, err
	}
	creds := credentials.NewTLS(tlsConfig)

	auth := &authCheck{tokens: cfg.Tokens, authz: cfg.Authorizer, roles: cfg.Roles}

	s := &Server{dispatcher: cfg.Dispatcher}
	s.grpc = grpc.NewServer(
		grpc.Creds(creds),
		grpc.UnaryInterceptor(auth.unaryAuthInterceptor()),
		grpc.StreamInterceptor(auth.streamAuthInterceptor()),
	)
	s.grpc.RegisterService(serviceDescPtr(s), s)
	return s, nil
}

func serviceDescPtr(s *Server) *grpc.ServiceDesc {
	desc := fabricServiceDesc(s)
	return &desc
}

// Serve accepts connections on addr and blocks until the server stops.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("intellirouter/transport: listen on %s: %w", addr, err)
	}
	return s.grpc.Serve(lis)
}

// GracefulStop stops accepting new calls and waits for in-flight ones to
// finish.
func (s *Server) GracefulStop() { s.grpc.GracefulStop() }

// Stop immediately terminates the server and any in-flight calls.
func (s *Server) Stop() { s.grpc.Stop() }
