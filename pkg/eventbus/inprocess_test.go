package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

func mustChannel(t *testing.T, source, destination, kind string) types.Channel {
	t.Helper()
	ch, err := types.NewChannel(source, destination, kind)
	require.NoError(t, err)
	return ch
}

func TestInProcessBroker_PublishDeliversToMatchingSubscriber(t *testing.T) {
	b := NewInProcessBroker()
	defer b.Close()

	ch := mustChannel(t, "router_core", "model_registry", "model_resolved")
	sub, err := b.Subscribe(context.Background(), ch)
	require.NoError(t, err)
	defer sub.Release()

	require.NoError(t, b.Publish(context.Background(), ch, types.CallEnvelope{Payload: []byte("hi")}))

	select {
	case env := <-sub.Events():
		assert.Equal(t, []byte("hi"), env.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestInProcessBroker_WildcardKindMatches(t *testing.T) {
	b := NewInProcessBroker()
	defer b.Close()

	pattern, err := types.NewChannelPattern("router_core", "model_registry", "*")
	require.NoError(t, err)
	sub, err := b.Subscribe(context.Background(), pattern)
	require.NoError(t, err)
	defer sub.Release()

	published := mustChannel(t, "router_core", "model_registry", "model_resolved")
	require.NoError(t, b.Publish(context.Background(), published, types.CallEnvelope{Payload: []byte("x")}))

	select {
	case env := <-sub.Events():
		assert.Equal(t, []byte("x"), env.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for wildcard delivery")
	}
}

func TestInProcessBroker_NonMatchingChannelNotDelivered(t *testing.T) {
	b := NewInProcessBroker()
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), mustChannel(t, "router_core", "model_registry", "model_resolved"))
	require.NoError(t, err)
	defer sub.Release()

	other := mustChannel(t, "router_core", "memory", "memory_written")
	require.NoError(t, b.Publish(context.Background(), other, types.CallEnvelope{Payload: []byte("nope")}))

	select {
	case env := <-sub.Events():
		t.Fatalf("unexpected delivery: %+v", env)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestInProcessBroker_ReleaseIsIdempotentAndClosesEvents(t *testing.T) {
	b := NewInProcessBroker()
	defer b.Close()

	sub, err := b.Subscribe(context.Background(), mustChannel(t, "a", "b", "c"))
	require.NoError(t, err)

	sub.Release()
	sub.Release() // must not panic

	_, ok := <-sub.Events()
	assert.False(t, ok, "events channel should be closed after Release")
}

func TestInProcessBroker_PublishNeverBlocksOnFullSubscriber(t *testing.T) {
	b := NewInProcessBroker()
	defer b.Close()

	ch := mustChannel(t, "a", "b", "c")
	sub, err := b.Subscribe(context.Background(), ch)
	require.NoError(t, err)
	defer sub.Release()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			_ = b.Publish(context.Background(), ch, types.CallEnvelope{Payload: []byte("x")})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber buffer")
	}
}

func TestRedisPattern(t *testing.T) {
	plain := mustChannel(t, "router_core", "model_registry", "model_resolved")
	pattern, wildcard := redisPattern(plain)
	assert.False(t, wildcard)
	assert.Equal(t, plain.String(), pattern)

	wc, err := types.NewChannelPattern("router_core", "model_registry", "*")
	require.NoError(t, err)
	globbed, isWildcard := redisPattern(wc)
	assert.True(t, isWildcard)
	assert.Contains(t, globbed, "router_core")
	assert.Contains(t, globbed, "model_registry")
}
