/*
Package health provides pluggable liveness probes — HTTP, TCP, and Exec —
and a Registry that answers the Model Registry contract's HealthCheck
operation (pkg/contracts) from whichever Checker an operator registered for
a given model ID.

# Checker types

All three Checker implementations share the same interface:

	type Checker interface {
		Check(ctx context.Context) Result
		Type() CheckType
	}

HTTPChecker polls a URL and considers the response healthy within a
configurable status range:

	checker := health.NewHTTPChecker("http://localhost:9000/health").
		WithStatusRange(200, 299).
		WithTimeout(3 * time.Second)

TCPChecker confirms a backend is accepting connections without sending any
data, useful for a model-serving process's raw listener:

	checker := health.NewTCPChecker("localhost:9000")

ExecChecker runs a command on the host and treats exit code 0 as healthy,
useful for a model-serving process that ships its own readiness script:

	checker := health.NewExecChecker([]string{"curl", "-f", "localhost:9000/ready"})

# Registry

Registry binds a Checker to a model ID and implements HealthCheck directly:

	reg := health.NewRegistry()
	reg.Register("gpt-oss-20b", health.NewHTTPChecker("http://localhost:9000/health"))

	resp, _ := reg.HealthCheck(ctx, contracts.HealthCheckRequest{ID: "gpt-oss-20b"})
	// resp.Healthy, resp.Detail now reflect the HTTP checker's last result
*/
package health
