package eventbus

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/lspecian/intellirouter/pkg/types"
)

// RateLimitedBroker wraps a Broker, throttling Publish to at most Limiter's
// configured rate. Subscribe and Close pass straight through: the fabric's
// rate-limiting story (spec §8, left unquantified) only ever applies to the
// publishing side, never to delivery.
//
// Wrapping is opt-in: a Broker used directly, with no RateLimitedBroker in
// front of it, has no publish-side limiting at all. Limiting is enabled only
// by code that wraps a Broker with NewRateLimitedBroker; pkg/config has no
// rate-limit setting.
type RateLimitedBroker struct {
	next    Broker
	limiter *rate.Limiter
}

// NewRateLimitedBroker wraps next, rejecting Publish calls that exceed
// limiter's rate with a FailureInternal IpcFailure rather than blocking the
// caller. A nil limiter makes this a transparent passthrough.
func NewRateLimitedBroker(next Broker, limiter *rate.Limiter) *RateLimitedBroker {
	return &RateLimitedBroker{next: next, limiter: limiter}
}

// Publish admits env to the wrapped Broker's Publish if the limiter has a
// token available, or returns a FailureInternal IpcFailure ("publish rate
// limit exceeded") immediately otherwise.
func (b *RateLimitedBroker) Publish(ctx context.Context, channel types.Channel, env types.CallEnvelope) error {
	if b.limiter != nil && !b.limiter.Allow() {
		return types.NewFailure(types.FailureInternal, "publish rate limit exceeded", nil)
	}
	return b.next.Publish(ctx, channel, env)
}

// Subscribe delegates to the wrapped Broker unchanged.
func (b *RateLimitedBroker) Subscribe(ctx context.Context, channel types.Channel) (*Subscription, error) {
	return b.next.Subscribe(ctx, channel)
}

// Close delegates to the wrapped Broker unchanged.
func (b *RateLimitedBroker) Close() error { return b.next.Close() }
