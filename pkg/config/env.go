package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnvOverrides mutates cfg in place, replacing each field with its
// INTELLIROUTER_<SECTION>_<FIELD> environment variable when one is set.
// Unset variables leave the YAML-loaded value untouched.
func applyEnvOverrides(cfg *Config) {
	envBool("INTELLIROUTER_TOKEN_ENABLED", &cfg.Token.Enabled)
	envString("INTELLIROUTER_TOKEN_SECRET", &cfg.Token.Secret)
	envString("INTELLIROUTER_TOKEN_ISSUER", &cfg.Token.Issuer)
	envString("INTELLIROUTER_TOKEN_AUDIENCE", &cfg.Token.Audience)
	envInt("INTELLIROUTER_TOKEN_LIFETIME_SECONDS", &cfg.Token.LifetimeSeconds)

	envString("INTELLIROUTER_TRUST_CERT_PATH", &cfg.Trust.CertPath)
	envString("INTELLIROUTER_TRUST_KEY_PATH", &cfg.Trust.KeyPath)
	envString("INTELLIROUTER_TRUST_CA_CERT_PATH", &cfg.Trust.CACertPath)

	envString("INTELLIROUTER_BROKER_URL", &cfg.Broker.URL)

	envInt("INTELLIROUTER_RETRY_MAX_ATTEMPTS", &cfg.Retry.MaxAttempts)
	envInt("INTELLIROUTER_RETRY_BASE_DELAY_MS", &cfg.Retry.BaseDelayMS)
	envInt("INTELLIROUTER_RETRY_MAXIMUM_DELAY_MS", &cfg.Retry.MaximumDelayMS)
	envFloat64("INTELLIROUTER_RETRY_BACKOFF_EXPONENT", &cfg.Retry.BackoffExponent)
	envFloat64("INTELLIROUTER_RETRY_JITTER_FRACTION", &cfg.Retry.JitterFraction)
	envStringSlice("INTELLIROUTER_RETRY_RETRYABLE_KINDS", &cfg.Retry.RetryableKinds)

	envInt("INTELLIROUTER_CIRCUIT_BREAKER_TRIP_THRESHOLD", &cfg.CircuitBreaker.TripThreshold)
	envInt("INTELLIROUTER_CIRCUIT_BREAKER_COOL_DOWN_MS", &cfg.CircuitBreaker.CoolDownMS)
	envInt("INTELLIROUTER_CIRCUIT_BREAKER_HALF_OPEN_PROBES", &cfg.CircuitBreaker.HalfOpenProbes)

	envInt("INTELLIROUTER_TRANSPORT_DEFAULT_DEADLINE_MS", &cfg.Transport.DefaultDeadlineMS)
	envInt("INTELLIROUTER_TRANSPORT_STREAM_BUFFER_CAPACITY", &cfg.Transport.StreamBufferCapacity)
	envString("INTELLIROUTER_TRANSPORT_LISTEN_ADDR", &cfg.Transport.ListenAddr)
	envString("INTELLIROUTER_TRANSPORT_SERVER_NAME", &cfg.Transport.ServerName)

	envString("INTELLIROUTER_METRICS_ADDR", &cfg.Metrics.Addr)
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err == nil {
		*dst = b
	}
}

func envInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err == nil {
		*dst = n
	}
}

func envFloat64(key string, dst *float64) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil {
		*dst = f
	}
}

// envStringSlice overrides dst with a comma-separated list from key,
// trimming whitespace around each element and dropping empty ones.
func envStringSlice(key string, dst *[]string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	*dst = out
}
