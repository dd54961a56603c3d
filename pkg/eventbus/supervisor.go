package eventbus

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/lspecian/intellirouter/pkg/metrics"
	"github.com/lspecian/intellirouter/pkg/types"
)

// SupervisorConfig parameterizes a Supervisor's reconnect backoff, the same
// bounded-exponential-with-jitter shape pkg/resilience uses for retries.
type SupervisorConfig struct {
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	BackoffFactor  float64
	JitterFraction float64
}

// DefaultSupervisorConfig caps a reconnect loop at 30s between attempts.
func DefaultSupervisorConfig() SupervisorConfig {
	return SupervisorConfig{
		BaseDelay:      200 * time.Millisecond,
		MaxDelay:       30 * time.Second,
		BackoffFactor:  2,
		JitterFraction: 0.25,
	}
}

// Supervisor keeps a RedisBroker subscription alive across transient broker
// outages: on disconnect it resubscribes with capped exponential backoff
// instead of surfacing the error to the caller, who only ever sees one
// long-lived Events() channel.
type Supervisor struct {
	broker  *RedisBroker
	channel types.Channel
	config  SupervisorConfig
	log     zerolog.Logger

	out    chan types.CallEnvelope
	cancel context.CancelFunc
}

// Supervise starts a supervised subscription against channel. The returned
// Subscription's Events() channel stays open across reconnects; it only
// closes once Release is called or ctx is done.
func Supervise(ctx context.Context, broker *RedisBroker, channel types.Channel, config SupervisorConfig, log zerolog.Logger) *Subscription {
	if config.BaseDelay <= 0 {
		config = DefaultSupervisorConfig()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s := &Supervisor{
		broker:  broker,
		channel: channel,
		config:  config,
		log:     log.With().Str("component", "eventbus.supervisor").Logger(),
		out:     make(chan types.CallEnvelope, 64),
		cancel:  cancel,
	}
	go s.run(runCtx)

	return &Subscription{
		handle: types.NewSubscription("supervised:"+channel.String(), channel),
		events: s.out,
		cancel: cancel,
	}
}

func (s *Supervisor) run(ctx context.Context) {
	defer close(s.out)

	attempt := 0
	everConnected := false
	for {
		if ctx.Err() != nil {
			return
		}

		sub, err := s.broker.Subscribe(ctx, s.channel)
		if err != nil {
			attempt++
			delay := s.delayFor(attempt)
			s.log.Warn().Err(err).Dur("retry_in", delay).Msg("subscribe failed, backing off")
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			continue
		}

		if everConnected {
			metrics.BrokerReconnectsTotal.Inc()
		}
		everConnected = true

		attempt = 0
		s.drain(ctx, sub)
		if ctx.Err() != nil {
			return
		}
		// Events() closed: the underlying connection dropped. Loop and
		// resubscribe from attempt 0, no cool-down on the first retry after
		// a connection that was live for a while.
	}
}

func (s *Supervisor) drain(ctx context.Context, sub *Subscription) {
	defer sub.Release()
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-sub.Events():
			if !ok {
				return
			}
			select {
			case s.out <- env:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Supervisor) delayFor(attempt int) time.Duration {
	factor := s.config.BackoffFactor
	if factor <= 0 {
		factor = 2
	}
	raw := float64(s.config.BaseDelay) * math.Pow(factor, float64(attempt-1))
	if max := float64(s.config.MaxDelay); max > 0 && raw > max {
		raw = max
	}
	if s.config.JitterFraction > 0 {
		jitter := raw * s.config.JitterFraction
		raw += (rand.Float64()*2 - 1) * jitter
	}
	if raw < 0 {
		raw = 0
	}
	return time.Duration(raw)
}
