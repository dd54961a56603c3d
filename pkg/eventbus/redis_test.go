package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

func newMiniredisBroker(t *testing.T) (*RedisBroker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisBrokerFromClient(client, zerolog.Nop()), mr
}

func TestRedisBroker_PublishSubscribeRoundTrip(t *testing.T) {
	broker, _ := newMiniredisBroker(t)
	defer broker.Close()

	ch := mustChannel(t, "router_core", "model_registry", "model_resolved")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := broker.Subscribe(ctx, ch)
	require.NoError(t, err)
	defer sub.Release()

	// miniredis delivers subscriptions asynchronously; give it a moment.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, broker.Publish(ctx, ch, types.CallEnvelope{Token: "t", Payload: []byte("hello")}))

	select {
	case env := <-sub.Events():
		assert.Equal(t, "t", env.Token)
		assert.Equal(t, []byte("hello"), env.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for redis delivery")
	}
}

func TestRedisBroker_WildcardPatternSubscription(t *testing.T) {
	broker, _ := newMiniredisBroker(t)
	defer broker.Close()

	pattern, err := types.NewChannelPattern("router_core", "model_registry", "*")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := broker.Subscribe(ctx, pattern)
	require.NoError(t, err)
	defer sub.Release()

	time.Sleep(50 * time.Millisecond)

	published := mustChannel(t, "router_core", "model_registry", "model_resolved")
	require.NoError(t, broker.Publish(ctx, published, types.CallEnvelope{Payload: []byte("x")}))

	select {
	case env := <-sub.Events():
		assert.Equal(t, []byte("x"), env.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for wildcard redis delivery")
	}
}

func TestRedisBroker_MalformedPayloadIsDroppedNotFatal(t *testing.T) {
	broker, mr := newMiniredisBroker(t)
	defer broker.Close()

	ch := mustChannel(t, "a", "b", "c")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := broker.Subscribe(ctx, ch)
	require.NoError(t, err)
	defer sub.Release()

	time.Sleep(50 * time.Millisecond)

	_, err = mr.Publish(ch.String(), "not a valid envelope")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(ctx, ch, types.CallEnvelope{Payload: []byte("good")}))

	select {
	case env := <-sub.Events():
		assert.Equal(t, []byte("good"), env.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery after malformed payload")
	}
}

func TestSupervisor_DeliversAcrossReconnect(t *testing.T) {
	broker, mr := newMiniredisBroker(t)
	defer broker.Close()

	ch := mustChannel(t, "router_core", "model_registry", "model_resolved")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := SupervisorConfig{BaseDelay: 10 * time.Millisecond, MaxDelay: 100 * time.Millisecond, BackoffFactor: 2, JitterFraction: 0}
	sub := Supervise(ctx, broker, ch, cfg, zerolog.Nop())
	defer sub.Release()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, broker.Publish(ctx, ch, types.CallEnvelope{Payload: []byte("first")}))

	select {
	case env := <-sub.Events():
		assert.Equal(t, []byte("first"), env.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for first delivery")
	}

	addr := mr.Addr()
	mr.Close()

	mr2 := miniredis.NewMiniRedis()
	require.NoError(t, mr2.StartAddr(addr))
	defer mr2.Close()

	assert.Eventually(t, func() bool {
		return broker.Publish(ctx, ch, types.CallEnvelope{Payload: []byte("second")}) == nil
	}, 5*time.Second, 20*time.Millisecond)

	select {
	case env := <-sub.Events():
		assert.Equal(t, []byte("second"), env.Payload)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for post-reconnect delivery")
	}
}
