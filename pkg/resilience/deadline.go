package resilience

import (
	"context"
	"time"

	"github.com/lspecian/intellirouter/pkg/types"
)

// WithDeadline bounds ctx to timeout and returns both the derived context
// and a cancel func the caller must invoke once the operation (including
// every retry attempt) has finished. A non-positive timeout returns ctx
// unchanged with a no-op cancel.
func WithDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// CheckDeadline converts err into the fabric's FailureTimeout when ctx's
// deadline was exceeded; any other error, including one from a plain
// cancellation, is returned untouched.
func CheckDeadline(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		return types.NewFailure(types.FailureTimeout, "deadline exceeded", err)
	}
	return err
}
