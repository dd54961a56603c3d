package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Call metrics — emitted from pkg/transport around every unary and
	// streaming call it dispatches.
	CallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcfabric_calls_total",
			Help: "Total number of IPC calls by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	CallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ipcfabric_call_duration_seconds",
			Help:    "IPC call duration in seconds by method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	StreamItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcfabric_stream_items_total",
			Help: "Total number of items delivered over streaming calls by method",
		},
		[]string{"method"},
	)

	// Resilience metrics — emitted from pkg/resilience.
	RetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcfabric_retries_total",
			Help: "Total number of retry attempts by endpoint and failure kind",
		},
		[]string{"endpoint", "failure_kind"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ipcfabric_circuit_breaker_state",
			Help: "Current circuit breaker state by endpoint (0=closed, 1=half-open, 2=open)",
		},
		[]string{"endpoint"},
	)

	CircuitBreakerTripsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcfabric_circuit_breaker_trips_total",
			Help: "Total number of times a circuit breaker has tripped to open by endpoint",
		},
		[]string{"endpoint"},
	)

	// Security metrics — emitted from pkg/security.
	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcfabric_tokens_issued_total",
			Help: "Total number of auth tokens issued by subject role",
		},
		[]string{"role"},
	)

	AuthorizationDeniedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcfabric_authorization_denied_total",
			Help: "Total number of calls rejected by role authorization by method",
		},
		[]string{"method"},
	)

	// Event bus metrics — emitted from pkg/eventbus.
	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcfabric_events_published_total",
			Help: "Total number of events published by channel kind",
		},
		[]string{"kind"},
	)

	EventsDeliveredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ipcfabric_events_delivered_total",
			Help: "Total number of events delivered to subscribers by channel kind",
		},
		[]string{"kind"},
	)

	BrokerReconnectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ipcfabric_broker_reconnects_total",
			Help: "Total number of times the event bus broker connection was re-established",
		},
	)
)

func init() {
	prometheus.MustRegister(
		CallsTotal,
		CallDuration,
		StreamItemsTotal,
		RetriesTotal,
		CircuitBreakerState,
		CircuitBreakerTripsTotal,
		TokensIssuedTotal,
		AuthorizationDeniedTotal,
		EventsPublishedTotal,
		EventsDeliveredTotal,
		BrokerReconnectsTotal,
	)
}

// Handler returns the Prometheus HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCallDuration records duration against CallDuration and
// CallsTotal for method, labeling the outcome "ok" or "error" depending
// on err.
func ObserveCallDuration(method string, duration time.Duration, err error) {
	CallDuration.WithLabelValues(method).Observe(duration.Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	CallsTotal.WithLabelValues(method, outcome).Inc()
}

// IncRetry records one retry attempt against endpoint for failureKind.
func IncRetry(endpoint, failureKind string) {
	RetriesTotal.WithLabelValues(endpoint, failureKind).Inc()
}

// SetCircuitState records endpoint's current breaker state (0=closed,
// 1=half-open, 2=open) and, on a closed->open transition, increments
// CircuitBreakerTripsTotal.
func SetCircuitState(endpoint string, state int, tripped bool) {
	CircuitBreakerState.WithLabelValues(endpoint).Set(float64(state))
	if tripped {
		CircuitBreakerTripsTotal.WithLabelValues(endpoint).Inc()
	}
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
