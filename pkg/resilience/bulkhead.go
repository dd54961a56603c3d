package resilience

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/lspecian/intellirouter/pkg/types"
)

// BulkheadConfig bounds how many calls a Bulkhead admits concurrently.
type BulkheadConfig struct {
	// MaxConcurrent is the maximum number of in-flight operations. A
	// non-positive value defaults to 10.
	MaxConcurrent int64
}

// DefaultBulkheadConfig admits up to 10 concurrent operations.
func DefaultBulkheadConfig() BulkheadConfig {
	return BulkheadConfig{MaxConcurrent: 10}
}

// Bulkhead caps the number of concurrent operations sharing one endpoint's
// connection pool, so a slow downstream can't starve every other caller of
// the same FabricClient. It sits alongside CircuitBreaker and Retry in a
// Policy rather than inside them: a breaker decides whether to call at all,
// a bulkhead decides how many calls may be in flight at once.
type Bulkhead struct {
	sem *semaphore.Weighted
}

// NewBulkhead returns a Bulkhead admitting config.MaxConcurrent operations
// at a time.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	if config.MaxConcurrent <= 0 {
		config = DefaultBulkheadConfig()
	}
	return &Bulkhead{sem: semaphore.NewWeighted(config.MaxConcurrent)}
}

// Execute runs op once a slot is available, returning a FailureInternal
// IpcFailure if ctx is done before one opens up.
func (b *Bulkhead) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return types.NewFailure(types.FailureInternal, "bulkhead: no slot available", err)
	}
	defer b.sem.Release(1)
	return op(ctx)
}

// TryExecute runs op only if a slot is immediately available, without
// waiting. It returns a FailureInternal IpcFailure if the bulkhead is full.
func (b *Bulkhead) TryExecute(ctx context.Context, op func(context.Context) error) error {
	if !b.sem.TryAcquire(1) {
		return types.NewFailure(types.FailureInternal, "bulkhead: full", nil)
	}
	defer b.sem.Release(1)
	return op(ctx)
}
