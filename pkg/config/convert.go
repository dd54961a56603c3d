package config

import (
	"fmt"
	"os"
	"time"

	"github.com/lspecian/intellirouter/pkg/security"
	"github.com/lspecian/intellirouter/pkg/types"
)

// TrustMaterial reads the certificate, key, and CA bundle named in c from
// disk into a types.TrustMaterial.
func (c TrustConfig) TrustMaterial() (types.TrustMaterial, error) {
	certPEM, err := os.ReadFile(c.CertPath)
	if err != nil {
		return types.TrustMaterial{}, fmt.Errorf("intellirouter/config: read cert-path %s: %w", c.CertPath, err)
	}
	keyPEM, err := os.ReadFile(c.KeyPath)
	if err != nil {
		return types.TrustMaterial{}, fmt.Errorf("intellirouter/config: read key-path %s: %w", c.KeyPath, err)
	}
	caPEM, err := os.ReadFile(c.CACertPath)
	if err != nil {
		return types.TrustMaterial{}, fmt.Errorf("intellirouter/config: read ca-cert-path %s: %w", c.CACertPath, err)
	}
	return types.TrustMaterial{CertPEM: certPEM, KeyPEM: keyPEM, CACertPEM: caPEM}, nil
}

// TokenServiceConfig converts c to a security.TokenConfig.
func (c TokenConfig) TokenServiceConfig() security.TokenConfig {
	return security.TokenConfig{
		Secret:          []byte(c.Secret),
		Issuer:          c.Issuer,
		Audience:        c.Audience,
		DefaultLifetime: time.Duration(c.LifetimeSeconds) * time.Second,
	}
}

// RetryPolicy converts c to a types.RetryPolicy. An empty RetryableKinds
// list falls back to types.DefaultRetryableKinds, since an operator who
// never set the option should get the spec's default retryable-kind-set,
// not a policy that retries nothing.
func (c RetryConfig) RetryPolicy() types.RetryPolicy {
	kinds := types.DefaultRetryableKinds()
	if len(c.RetryableKinds) > 0 {
		kinds = make(map[types.FailureKind]bool, len(c.RetryableKinds))
		for _, k := range c.RetryableKinds {
			kinds[types.FailureKind(k)] = true
		}
	}
	return types.RetryPolicy{
		MaxAttempts:     c.MaxAttempts,
		BaseDelayMS:     c.BaseDelayMS,
		MaximumDelayMS:  c.MaximumDelayMS,
		BackoffExponent: c.BackoffExponent,
		JitterFraction:  c.JitterFraction,
		RetryableKinds:  kinds,
	}
}

// BreakerConfig converts c to a types.CircuitBreakerConfig.
func (c CircuitBreakerConfig) BreakerConfig() types.CircuitBreakerConfig {
	return types.CircuitBreakerConfig{
		TripThreshold:  c.TripThreshold,
		CoolDownMS:     c.CoolDownMS,
		HalfOpenProbes: c.HalfOpenProbes,
	}
}

// DefaultDeadline converts c's millisecond deadline to a time.Duration.
func (c TransportConfig) DefaultDeadline() time.Duration {
	return time.Duration(c.DefaultDeadlineMS) * time.Millisecond
}
