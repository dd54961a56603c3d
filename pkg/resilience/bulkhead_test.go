package resilience

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkhead_AdmitsUpToMaxConcurrent(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 2})

	release := make(chan struct{})
	var inFlight int32
	var mu sync.Mutex
	maxSeen := 0

	start := func() {
		_ = b.Execute(context.Background(), func(ctx context.Context) error {
			mu.Lock()
			inFlight++
			if int(inFlight) > maxSeen {
				maxSeen = int(inFlight)
			}
			mu.Unlock()
			<-release
			mu.Lock()
			inFlight--
			mu.Unlock()
			return nil
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start()
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, maxSeen, 2)
}

func TestBulkhead_TryExecuteFailsWhenFull(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})

	hold := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = b.Execute(context.Background(), func(ctx context.Context) error {
			close(done)
			<-hold
			return nil
		})
	}()
	<-done

	err := b.TryExecute(context.Background(), func(ctx context.Context) error { return nil })
	require.Error(t, err)
	close(hold)
}

func TestBulkhead_ExecuteReturnsFailureOnContextCancel(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})

	hold := make(chan struct{})
	go func() {
		_ = b.Execute(context.Background(), func(ctx context.Context) error {
			<-hold
			return nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := b.Execute(ctx, func(ctx context.Context) error { return nil })
	require.Error(t, err)
	close(hold)
}
