package eventbus

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lspecian/intellirouter/pkg/metrics"
	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

// RedisConfig configures a RedisBroker.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
}

// DefaultRedisConfig mirrors the pack's usual go-redis defaults.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         "localhost:6379",
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// RedisBroker publishes and subscribes envelopes across processes via
// Redis PUBLISH/SUBSCRIBE (and PSUBSCRIBE for wildcard-kind channels),
// serializing types.CallEnvelope with pkg/wire.
type RedisBroker struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedisBroker dials addr and verifies connectivity with PING.
func NewRedisBroker(ctx context.Context, cfg RedisConfig, log zerolog.Logger) (*RedisBroker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, types.NewFailure(types.FailureConnection, "connect to redis broker", err)
	}
	return &RedisBroker{client: client, log: log.With().Str("component", "eventbus.redis").Logger()}, nil
}

// NewRedisBrokerFromClient wraps an already-constructed client, used by
// tests against github.com/alicebob/miniredis/v2.
func NewRedisBrokerFromClient(client *redis.Client, log zerolog.Logger) *RedisBroker {
	return &RedisBroker{client: client, log: log.With().Str("component", "eventbus.redis").Logger()}
}

// Publish serializes env and PUBLISHes it on channel's wire name.
func (b *RedisBroker) Publish(ctx context.Context, channel types.Channel, env types.CallEnvelope) error {
	payload, err := wire.Envelope{CallEnvelope: env}.Marshal()
	if err != nil {
		return types.NewFailure(types.FailureSerialization, "marshal envelope", err)
	}
	if err := b.client.Publish(ctx, channel.String(), payload).Err(); err != nil {
		return types.NewFailure(types.FailureConnection, "publish", err)
	}
	metrics.EventsPublishedTotal.WithLabelValues(channel.Kind()).Inc()
	return nil
}

// Subscribe opens a Redis SUBSCRIBE (or PSUBSCRIBE, for a "*"-kind
// pattern) and forwards successfully-deserialized envelopes to the
// returned Subscription. A message that fails to deserialize is logged and
// dropped, never delivered and never a fatal condition for the
// subscription.
func (b *RedisBroker) Subscribe(ctx context.Context, channel types.Channel) (*Subscription, error) {
	pattern, wildcard := redisPattern(channel)

	var pubsub *redis.PubSub
	if wildcard {
		pubsub = b.client.PSubscribe(ctx, pattern)
	} else {
		pubsub = b.client.Subscribe(ctx, pattern)
	}
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, types.NewFailure(types.FailureConnection, "subscribe", err)
	}

	out := make(chan types.CallEnvelope, 64)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(out)
		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env wire.Envelope
				if err := env.Unmarshal([]byte(msg.Payload)); err != nil {
					b.log.Warn().Err(err).Str("channel", msg.Channel).Msg("dropping envelope that failed to deserialize")
					continue
				}
				select {
				case out <- env.CallEnvelope:
					metrics.EventsDeliveredTotal.WithLabelValues(channel.Kind()).Inc()
				default:
					b.log.Warn().Str("channel", msg.Channel).Msg("subscriber buffer full, dropping event")
				}
			}
		}
	}()

	return &Subscription{
		handle: types.NewSubscription(fmt.Sprintf("redis:%s", pattern), channel),
		events: out,
		cancel: func() {
			cancel()
			_ = pubsub.Close()
		},
	}, nil
}

// Close releases the underlying Redis client.
func (b *RedisBroker) Close() error {
	return b.client.Close()
}
