package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/lspecian/intellirouter/pkg/types"
)

// Policy bundles the parameters Resilient needs: an overall Deadline
// applied once around the whole call, a CircuitBreaker keyed to the
// target endpoint, and a Retry policy applied to individual attempts
// inside the breaker.
type Policy struct {
	Deadline time.Duration
	Breaker  *CircuitBreaker
	Retry    *Retry
	Bulkhead *Bulkhead
}

// Resilient runs op wrapped, in order, by Deadline, then Bulkhead, then
// CircuitBreaker, then Retry: the deadline bounds every retried attempt
// together, the bulkhead admits only so many calls at once, the breaker
// decides once per logical call whether to even try, and retry governs
// backoff between attempts inside the call the breaker admitted — so a
// transient failure retried three times within one admitted call still
// counts as a single success or failure for the breaker's own tripping
// purposes, not three.
func Resilient(ctx context.Context, p Policy, op func(context.Context) error) error {
	ctx, cancel := WithDeadline(ctx, p.Deadline)
	defer cancel()

	withRetry := op
	if p.Retry != nil {
		withRetry = func(ctx context.Context) error {
			return p.Retry.Execute(ctx, op)
		}
	}

	withBreaker := withRetry
	if p.Breaker != nil {
		withBreaker = func(ctx context.Context) error {
			return p.Breaker.Execute(ctx, withRetry)
		}
	}

	withBulkhead := withBreaker
	if p.Bulkhead != nil {
		withBulkhead = func(ctx context.Context) error {
			return p.Bulkhead.Execute(ctx, withBreaker)
		}
	}

	return CheckDeadline(ctx, withBulkhead(ctx))
}

// Registry hands out one CircuitBreaker per endpoint name, creating it
// lazily on first use via factory. pkg/transport and pkg/gateway keep one
// Registry per process so every client call against the same target
// shares breaker state.
type Registry struct {
	mu       sync.Mutex
	factory  func(endpoint string) *CircuitBreaker
	breakers map[string]*CircuitBreaker
}

// NewRegistry returns an empty Registry. factory is called once per
// distinct endpoint name the first time Get is asked for it.
func NewRegistry(factory func(endpoint string) *CircuitBreaker) *Registry {
	return &Registry{
		factory:  factory,
		breakers: make(map[string]*CircuitBreaker),
	}
}

// Get returns the breaker for endpoint, creating it on first access.
func (r *Registry) Get(endpoint string) *CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.breakers[endpoint]; ok {
		return b
	}
	b := r.factory(endpoint)
	r.breakers[endpoint] = b
	return b
}

// Snapshots returns a copy of every known endpoint's breaker state, keyed
// by endpoint name. Used by cmd/ipcctl's breaker-status command and by
// pkg/gateway's health reporting.
func (r *Registry) Snapshots() map[string]types.CircuitBreakerState {
	r.mu.Lock()
	endpoints := make([]string, 0, len(r.breakers))
	breakers := make([]*CircuitBreaker, 0, len(r.breakers))
	for ep, b := range r.breakers {
		endpoints = append(endpoints, ep)
		breakers = append(breakers, b)
	}
	r.mu.Unlock()

	out := make(map[string]types.CircuitBreakerState, len(endpoints))
	for i, ep := range endpoints {
		out[ep] = breakers[i].Snapshot()
	}
	return out
}
