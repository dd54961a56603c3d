package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors spec §6's recognized configuration options one section
// per sub-struct: Token, Trust, Broker, Retry, CircuitBreaker, Transport.
type Config struct {
	Token          TokenConfig          `yaml:"token"`
	Trust          TrustConfig          `yaml:"trust"`
	Broker         BrokerConfig         `yaml:"broker"`
	Retry          RetryConfig          `yaml:"retry"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit-breaker"`
	Transport      TransportConfig      `yaml:"transport"`
	Metrics        MetricsConfig        `yaml:"metrics"`
}

// MetricsConfig configures the process's ambient HTTP surface: the address
// /metrics, /health, and /ready are served from. Not part of spec §6's
// recognized options (which only covers the fabric's own behavior), but
// every pack metrics package exposes one of these, so cmd/ipcfabricd needs
// somewhere to read it from.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// TokenConfig configures the token service: {enabled, secret, issuer,
// audience, lifetime} per spec §6.
type TokenConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	Audience        string `yaml:"audience"`
	LifetimeSeconds int    `yaml:"lifetime-seconds"`
}

// TrustConfig configures mutual TLS trust material: {cert-path, key-path,
// ca-cert-path} per spec §6.
type TrustConfig struct {
	CertPath   string `yaml:"cert-path"`
	KeyPath    string `yaml:"key-path"`
	CACertPath string `yaml:"ca-cert-path"`
}

// BrokerConfig configures the event bus adapter: {broker-url} per spec §6.
type BrokerConfig struct {
	URL string `yaml:"broker-url"`
}

// RetryConfig configures the resilience retry policy: {max-attempts,
// base-delay, maximum-delay, backoff-exponent, jitter-fraction,
// retryable-kinds} per spec §6.
type RetryConfig struct {
	MaxAttempts     int      `yaml:"max-attempts"`
	BaseDelayMS     int      `yaml:"base-delay-ms"`
	MaximumDelayMS  int      `yaml:"maximum-delay-ms"`
	BackoffExponent float64  `yaml:"backoff-exponent"`
	JitterFraction  float64  `yaml:"jitter-fraction"`
	RetryableKinds  []string `yaml:"retryable-kinds"`
}

// CircuitBreakerConfig configures the resilience circuit breaker:
// {trip-threshold, cool-down, half-open-probes} per spec §6.
type CircuitBreakerConfig struct {
	TripThreshold  int `yaml:"trip-threshold"`
	CoolDownMS     int `yaml:"cool-down-ms"`
	HalfOpenProbes int `yaml:"half-open-probes"`
}

// TransportConfig configures the transport adapter: {default-deadline,
// stream-buffer-capacity} per spec §6, plus the listen address and
// certificate server name cmd/ipcfabricd binds its mTLS endpoint to.
type TransportConfig struct {
	DefaultDeadlineMS    int    `yaml:"default-deadline-ms"`
	StreamBufferCapacity int    `yaml:"stream-buffer-capacity"`
	ListenAddr           string `yaml:"listen-addr"`
	ServerName           string `yaml:"server-name"`
}

// Load reads path as YAML into a Config, then applies any
// INTELLIROUTER_<SECTION>_<FIELD> environment variable overrides found in
// the process environment (see env.go).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("intellirouter/config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("intellirouter/config: parse %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}
