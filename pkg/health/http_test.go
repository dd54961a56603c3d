package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModelEndpoint(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL
}

func TestHTTPChecker_ReportsHealthyOn2xx(t *testing.T) {
	url := newModelEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	result := NewHTTPChecker(url).Check(context.Background())

	require.True(t, result.Healthy, result.Message)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestHTTPChecker_ReportsUnhealthyOn5xx(t *testing.T) {
	url := newModelEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	result := NewHTTPChecker(url).Check(context.Background())

	assert.False(t, result.Healthy)
}

func TestHTTPChecker_WithStatusRangeAcceptsStatusInConfiguredRange(t *testing.T) {
	url := newModelEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	result := NewHTTPChecker(url).WithStatusRange(200, 299).Check(context.Background())

	assert.True(t, result.Healthy, result.Message)
}

func TestHTTPChecker_WithHeaderSendsAuthToken(t *testing.T) {
	url := newModelEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer probe-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	result := NewHTTPChecker(url).WithHeader("Authorization", "Bearer probe-token").Check(context.Background())

	assert.True(t, result.Healthy, result.Message)
}

func TestHTTPChecker_WithTimeoutFailsSlowBackend(t *testing.T) {
	url := newModelEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	result := NewHTTPChecker(url).WithTimeout(50 * time.Millisecond).Check(context.Background())

	assert.False(t, result.Healthy)
}

func TestHTTPChecker_CancelledContextFailsImmediately(t *testing.T) {
	url := newModelEndpoint(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewHTTPChecker(url).Check(ctx)

	assert.False(t, result.Healthy)
}

func TestHTTPChecker_Type(t *testing.T) {
	assert.Equal(t, CheckTypeHTTP, NewHTTPChecker("http://example.com").Type())
}
