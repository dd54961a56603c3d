/*
Package metrics defines and registers the IPC fabric's Prometheus metrics:
call counts and latency (pkg/transport), retry and circuit breaker state
(pkg/resilience), token issuance and authorization denials (pkg/security),
and event throughput (pkg/eventbus).

Metrics are package-level prometheus.Collector vars registered once via
init, in the same shape as every metrics package in the retrieval pack.
Handler returns the scrape endpoint:

	http.Handle("/metrics", metrics.Handler())

Call timing, retries and circuit breaker state go through the named helpers;
the other collectors are incremented directly at their call sites:

	start := time.Now()
	err := dispatch(ctx, req)
	metrics.ObserveCallDuration(method, time.Since(start), err)

Liveness and readiness are pkg/gateway.HealthHandler's job, not this
package's — metrics observes, it doesn't answer health probes.
*/
package metrics
