package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/contracts"
)

type fakeChecker struct {
	result Result
}

func (f fakeChecker) Check(ctx context.Context) Result { return f.result }
func (f fakeChecker) Type() CheckType                  { return CheckTypeHTTP }

func TestRegistry_HealthCheckUsesRegisteredChecker(t *testing.T) {
	reg := NewRegistry()
	reg.Register("gpt-oss-20b", fakeChecker{result: Result{Healthy: true, Message: "HTTP 200 OK"}})

	resp, err := reg.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "gpt-oss-20b"})
	require.NoError(t, err)
	assert.True(t, resp.Healthy)
	assert.Equal(t, "HTTP 200 OK", resp.Detail)
}

func TestRegistry_HealthCheckUnknownIDReportsUnhealthyNotError(t *testing.T) {
	reg := NewRegistry()

	resp, err := reg.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "unknown"})
	require.NoError(t, err)
	assert.False(t, resp.Healthy)
	assert.Contains(t, resp.Detail, "unknown")
}

func TestRegistry_UnregisterRemovesChecker(t *testing.T) {
	reg := NewRegistry()
	reg.Register("m1", fakeChecker{result: Result{Healthy: true}})
	reg.Unregister("m1")

	resp, err := reg.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "m1"})
	require.NoError(t, err)
	assert.False(t, resp.Healthy)
}

func TestRegistry_RegisterReplacesExistingChecker(t *testing.T) {
	reg := NewRegistry()
	reg.Register("m1", fakeChecker{result: Result{Healthy: false, Message: "down"}})
	reg.Register("m1", fakeChecker{result: Result{Healthy: true, Message: "up"}})

	resp, err := reg.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "m1"})
	require.NoError(t, err)
	assert.True(t, resp.Healthy)
	assert.Equal(t, "up", resp.Detail)
}

func TestRegistry_DoesNotFlapUntilRetriesThresholdReached(t *testing.T) {
	reg := NewRegistry()
	checker := &mutableChecker{result: Result{Healthy: false, Message: "connection refused"}}
	reg.RegisterWithConfig("m1", checker, Config{Retries: 3})

	// Two failures don't reach the threshold yet: Status stays healthy.
	for i := 0; i < 2; i++ {
		resp, err := reg.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "m1"})
		require.NoError(t, err)
		assert.True(t, resp.Healthy, "check %d should not yet flip Status unhealthy", i+1)
	}

	// Third consecutive failure reaches the threshold.
	resp, err := reg.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "m1"})
	require.NoError(t, err)
	assert.False(t, resp.Healthy)

	// A single success immediately clears it.
	checker.result = Result{Healthy: true, Message: "recovered"}
	resp, err = reg.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "m1"})
	require.NoError(t, err)
	assert.True(t, resp.Healthy)
}

func TestRegistry_StartPeriodGraceSuppressesFailures(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterWithConfig("m1", fakeChecker{result: Result{Healthy: false, Message: "still loading weights"}}, Config{
		Retries:     1,
		StartPeriod: time.Hour,
	})

	resp, err := reg.HealthCheck(context.Background(), contracts.HealthCheckRequest{ID: "m1"})
	require.NoError(t, err)
	assert.True(t, resp.Healthy, "a model still in its start period should report healthy regardless of check result")
	assert.Contains(t, resp.Detail, "start period")
}

type mutableChecker struct {
	result Result
}

func (c *mutableChecker) Check(ctx context.Context) Result { return c.result }
func (c *mutableChecker) Type() CheckType                  { return CheckTypeHTTP }
