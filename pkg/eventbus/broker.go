package eventbus

import (
	"context"

	"github.com/lspecian/intellirouter/pkg/types"
)

// Broker is the transport-agnostic publish/subscribe surface. Publish
// delivers env to every live Subscription whose channel matches; Subscribe
// returns a handle streaming such deliveries until Release'd.
type Broker interface {
	Publish(ctx context.Context, channel types.Channel, env types.CallEnvelope) error
	Subscribe(ctx context.Context, channel types.Channel) (*Subscription, error)
	Close() error
}

// Subscription pairs a types.Subscription handle with the Go channel that
// actually delivers envelopes. It outlives neither its owning session nor
// an explicit Release call, per the base Subscription contract in
// pkg/types; Release is idempotent and safe to call from any goroutine.
type Subscription struct {
	handle *types.Subscription
	events chan types.CallEnvelope
	cancel func()
}

// Handle returns the underlying resource handle, e.g. for logging or for
// checking whether it has been released.
func (s *Subscription) Handle() *types.Subscription { return s.handle }

// Events returns the channel envelopes are delivered on. It is closed once
// Release is called.
func (s *Subscription) Events() <-chan types.CallEnvelope { return s.events }

// Release stops delivery and frees any resources associated with the
// subscription. Calling it more than once is a no-op.
func (s *Subscription) Release() {
	if s.handle.Released() {
		return
	}
	s.handle.Release()
	if s.cancel != nil {
		s.cancel()
	}
}
