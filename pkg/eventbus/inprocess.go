package eventbus

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lspecian/intellirouter/pkg/metrics"
	"github.com/lspecian/intellirouter/pkg/types"
)

// InProcessBroker fans published envelopes out to every matching
// subscriber within the same process: no network hop, no serialization
// round-trip beyond what the caller already did to build the envelope.
// Delivery to a slow subscriber is best-effort — a full subscriber buffer
// drops the event rather than blocking the publisher, the same trade-off
// the single-process fan-out this is adapted from makes.
type InProcessBroker struct {
	mu   sync.RWMutex
	subs map[string]*inprocessSub
}

type inprocessSub struct {
	pattern types.Channel
	ch      chan types.CallEnvelope
}

// NewInProcessBroker returns an empty broker.
func NewInProcessBroker() *InProcessBroker {
	return &InProcessBroker{subs: make(map[string]*inprocessSub)}
}

// Publish delivers env to every subscription whose channel pattern matches
// channel. Buffered sends that would block are dropped, never blocking the
// publisher.
func (b *InProcessBroker) Publish(ctx context.Context, channel types.Channel, env types.CallEnvelope) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	metrics.EventsPublishedTotal.WithLabelValues(channel.Kind()).Inc()
	for _, sub := range b.subs {
		if !channelMatches(sub.pattern, channel) {
			continue
		}
		select {
		case sub.ch <- env:
			metrics.EventsDeliveredTotal.WithLabelValues(channel.Kind()).Inc()
		default:
		}
	}
	return nil
}

// Subscribe registers a new subscription against channel, which may be a
// wildcard pattern built with types.NewChannelPattern.
func (b *InProcessBroker) Subscribe(ctx context.Context, channel types.Channel) (*Subscription, error) {
	id := uuid.NewString()
	sub := &inprocessSub{pattern: channel, ch: make(chan types.CallEnvelope, 64)}

	b.mu.Lock()
	b.subs[id] = sub
	b.mu.Unlock()

	return &Subscription{
		handle: types.NewSubscription(id, channel),
		events: sub.ch,
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if s, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(s.ch)
			}
		},
	}, nil
}

// Close releases every live subscription.
func (b *InProcessBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, s := range b.subs {
		delete(b.subs, id)
		close(s.ch)
	}
	return nil
}

// channelMatches reports whether published matches a subscriber's
// (possibly wildcard-terminated) pattern channel.
func channelMatches(pattern, published types.Channel) bool {
	if pattern.Source() != published.Source() || pattern.Destination() != published.Destination() {
		return false
	}
	if pattern.Kind() == "*" {
		return true
	}
	return pattern.Kind() == published.Kind()
}

// redisPattern renders a types.Channel as a PSUBSCRIBE glob pattern when
// its kind is the literal wildcard, or its plain String() otherwise.
func redisPattern(channel types.Channel) (pattern string, isWildcard bool) {
	s := channel.String()
	if channel.Kind() == "*" {
		return strings.TrimSuffix(s, "*") + "*", true
	}
	return s, false
}
