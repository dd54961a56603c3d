package health

import (
	"context"
	"fmt"
	"sync"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

// entry pairs a registered Checker with the debounced Status tracking it,
// so a model isn't flipped unhealthy by a single transient failed check.
type entry struct {
	checker Checker
	config  Config
	status  *Status
}

// Registry tracks one Checker per registered model ID and answers the
// Model Registry contract's HealthCheck operation from their debounced
// Status, not raw per-call results.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register associates id with checker using DefaultConfig's debounce
// thresholds. Use RegisterWithConfig for a model that needs a longer
// StartPeriod (a slow-loading model) or a different Retries threshold.
func (r *Registry) Register(id string, checker Checker) {
	r.RegisterWithConfig(id, checker, DefaultConfig())
}

// RegisterWithConfig associates id with checker under config, replacing
// any previous registration (and its accumulated Status) for id.
func (r *Registry) RegisterWithConfig(id string, checker Checker, config Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &entry{checker: checker, config: config, status: NewStatus()}
}

// Unregister removes id's checker and its accumulated Status, if any.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// HealthCheck implements the Model Registry contract's HealthCheck
// operation. A model with no registered checker is reported unhealthy
// rather than erroring, since "no checker configured" is itself useful
// operator signal rather than a hard failure the caller must handle
// separately. A model still inside its StartPeriod grace window is always
// reported healthy, regardless of what this check observed, so a
// slow-loading model isn't routed around before it ever gets a chance to
// finish starting.
func (r *Registry) HealthCheck(ctx context.Context, req contracts.HealthCheckRequest) (contracts.HealthCheckResponse, error) {
	r.mu.Lock()
	e, ok := r.entries[req.ID]
	r.mu.Unlock()
	if !ok {
		return contracts.HealthCheckResponse{
			Healthy: false,
			Detail:  fmt.Sprintf("no health checker registered for model %q", req.ID),
		}, nil
	}

	checkCtx := ctx
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}
	result := e.checker.Check(checkCtx)

	r.mu.Lock()
	e.status.Update(result, e.config)
	healthy := e.status.Healthy
	inStartPeriod := e.status.InStartPeriod(e.config)
	r.mu.Unlock()

	detail := result.Message
	if inStartPeriod {
		healthy = true
		detail = fmt.Sprintf("%s (within start period, not yet enforced)", detail)
	}

	return contracts.HealthCheckResponse{Healthy: healthy, Detail: detail}, nil
}
