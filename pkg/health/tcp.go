package health

import (
	"context"
	"fmt"
	"net"
	"time"
)

// TCPChecker probes a backend by dialing it, for transports (a raw gRPC
// listener with no HTTP health route, say) that don't expose an HTTP
// endpoint HTTPChecker could use instead.
type TCPChecker struct {
	// Address is the TCP address to dial (e.g., "model-host:50051")
	Address string

	// Timeout bounds the dial (default: 5 seconds)
	Timeout time.Duration
}

// NewTCPChecker builds a TCPChecker for address with a 5s dial timeout.
func NewTCPChecker(address string) *TCPChecker {
	return &TCPChecker{
		Address: address,
		Timeout: 5 * time.Second,
	}
}

// Check dials Address and reports healthy on a successful connection,
// closing it immediately afterward — this only proves the port accepts
// connections, not that the service behind it is otherwise functioning.
func (t *TCPChecker) Check(ctx context.Context) Result {
	start := time.Now()
	dialer := &net.Dialer{Timeout: t.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", t.Address)
	if err != nil {
		return Result{
			Healthy:   false,
			Message:   fmt.Sprintf("dial failed: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}
	conn.Close()

	return Result{
		Healthy:   true,
		Message:   fmt.Sprintf("tcp connection to %s accepted", t.Address),
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

// Type returns the health check type
func (t *TCPChecker) Type() CheckType {
	return CheckTypeTCP
}

// WithTimeout sets the connection timeout
func (t *TCPChecker) WithTimeout(timeout time.Duration) *TCPChecker {
	t.Timeout = timeout
	return t
}
