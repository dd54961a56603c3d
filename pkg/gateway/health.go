package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lspecian/intellirouter/pkg/resilience"
	"github.com/lspecian/intellirouter/pkg/types"
)

// HealthHandler exposes the gateway's liveness and readiness over HTTP,
// grounded on the same /health and /ready split the fabric's embedding
// process uses for its own management endpoints. Readiness additionally
// reports every circuit breaker's current state so an operator (or
// cmd/ipcctl's breaker-status) can see an open breaker before it starts
// rejecting calls.
type HealthHandler struct {
	breakers *resilience.Registry
	mux      *http.ServeMux
}

// NewHealthHandler builds a HealthHandler reporting breaker state from
// breakers.
func NewHealthHandler(breakers *resilience.Registry) *HealthHandler {
	h := &HealthHandler{breakers: breakers, mux: http.NewServeMux()}
	h.mux.HandleFunc("/health", h.health)
	h.mux.HandleFunc("/ready", h.ready)
	return h
}

// ServeHTTP lets HealthHandler be mounted directly as an http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.mux.ServeHTTP(w, r) }

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type readyResponse struct {
	Status    string                                 `json:"status"`
	Timestamp time.Time                              `json:"timestamp"`
	Breakers  map[string]types.CircuitBreakerState `json:"breakers"`
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
}

func (h *HealthHandler) ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapshots := h.breakers.Snapshots()
	status := "ready"
	for _, s := range snapshots {
		if s.State == types.BreakerOpen {
			status = "degraded"
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(readyResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Breakers:  snapshots,
	})
}
