package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/lspecian/intellirouter/pkg/contracts"
	"github.com/lspecian/intellirouter/pkg/resilience"
	"github.com/lspecian/intellirouter/pkg/security"
	"github.com/lspecian/intellirouter/pkg/transport"
	"github.com/lspecian/intellirouter/pkg/types"
)

// BuilderConfig assembles everything one IntelliRouter gateway process
// needs: the trust material and token service securing every call, the
// contract implementations it hosts (live, mock, or a mix), and an
// optional role catalog narrowing which subjects may hold which role
// beyond what a token self-asserts.
type BuilderConfig struct {
	Trust      types.TrustMaterial
	ServerName string
	Tokens     *security.TokenService
	Catalog    *types.RoleCatalog
	Services   Services
	Breakers   *resilience.Registry
}

// Builder is the gateway's composition root: one Builder wires one set of
// trust material and contract implementations into both a servable
// transport.Server and any number of FabricClient connections sharing a
// single resilience.Registry (so every client dialed from this Builder
// shares breaker state per remote endpoint).
type Builder struct {
	cfg        BuilderConfig
	dispatcher *Dispatcher
	roles      contracts.Roles
	authorizer *security.Authorizer
	breakers   *resilience.Registry
}

// NewGatewayBuilder validates cfg and returns a ready Builder. A nil
// Breakers registry gets a default one backed by
// types.DefaultCircuitBreakerConfig.
func NewGatewayBuilder(cfg BuilderConfig) (*Builder, error) {
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("intellirouter/gateway: token service is required")
	}

	breakers := cfg.Breakers
	if breakers == nil {
		breakers = resilience.NewRegistry(func(endpoint string) *resilience.CircuitBreaker {
			return resilience.NewCircuitBreakerForEndpoint(types.DefaultCircuitBreakerConfig(), endpoint)
		})
	}

	roles := contracts.Merge(
		contracts.ChainEngineRoles,
		contracts.ModelRegistryRoles,
		contracts.MemoryRoles,
		contracts.RAGManagerRoles,
		contracts.PersonaLayerRoles,
		contracts.RouterRoles,
	)

	return &Builder{
		cfg:        cfg,
		dispatcher: NewDispatcher(cfg.Services),
		roles:      roles,
		authorizer: security.NewAuthorizer(cfg.Catalog),
		breakers:   breakers,
	}, nil
}

// Server builds the transport.Server hosting this Builder's Services.
func (b *Builder) Server() (*transport.Server, error) {
	return transport.NewServer(transport.ServerConfig{
		Trust:      b.cfg.Trust,
		ServerName: b.cfg.ServerName,
		Tokens:     b.cfg.Tokens,
		Authorizer: b.authorizer,
		Roles:      b.roles,
		Dispatcher: b.dispatcher,
	})
}

// Dial connects to addr as identity, issuing that identity a signed token
// good for lifetime (the service default when zero) and wrapping every
// call in unaryPolicy, every stream in streamPolicy. Both policies'
// Breaker, if set, should come from b.Breakers.Get(addr) so breaker state
// is shared across every client this Builder dials to the same endpoint.
func (b *Builder) Dial(ctx context.Context, addr string, identity types.ServiceIdentity, lifetime time.Duration, unaryPolicy, streamPolicy resilience.Policy) (*FabricClient, error) {
	conn, err := transport.Dial(ctx, addr, b.cfg.Trust, b.cfg.ServerName)
	if err != nil {
		return nil, err
	}
	holder, err := newTokenHolder(b.cfg.Tokens, identity, lifetime)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &FabricClient{
		conn: conn,
		cc: &callClient{
			conn:         conn,
			token:        holder.Token,
			unaryPolicy:  unaryPolicy,
			streamPolicy: streamPolicy,
		},
	}, nil
}

// Breakers returns the registry backing every breaker this Builder's
// clients and Dial calls use, for callers (cmd/ipcctl's breaker-status,
// the HealthHandler) that need to inspect shared state.
func (b *Builder) Breakers() *resilience.Registry { return b.breakers }

// DefaultPolicy returns a resilience.Policy using deadline, the breaker
// registered for endpoint, and a retry following retryPolicy. Passing a
// nil retryPolicy yields a policy with no retry, the recommended choice
// for streaming calls where a retried attempt would re-deliver from the
// beginning.
func (b *Builder) DefaultPolicy(endpoint string, deadline time.Duration, retryPolicy *types.RetryPolicy) resilience.Policy {
	p := resilience.Policy{
		Deadline: deadline,
		Breaker:  b.breakers.Get(endpoint),
	}
	if retryPolicy != nil {
		p.Retry = resilience.NewRetryForEndpoint(*retryPolicy, endpoint)
	}
	return p
}
