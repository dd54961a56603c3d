package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

const testYAML = `
token:
  enabled: true
  secret: super-secret
  issuer: intellirouter
  audience: intellirouter-fabric
  lifetime-seconds: 3600
trust:
  cert-path: /etc/intellirouter/tls/cert.pem
  key-path: /etc/intellirouter/tls/key.pem
  ca-cert-path: /etc/intellirouter/tls/ca.pem
broker:
  broker-url: redis://localhost:6379/0
retry:
  max-attempts: 3
  base-delay-ms: 100
  maximum-delay-ms: 5000
  backoff-exponent: 2
  jitter-fraction: 0.25
circuit-breaker:
  trip-threshold: 5
  cool-down-ms: 30000
  half-open-probes: 1
transport:
  default-deadline-ms: 2000
  stream-buffer-capacity: 64
`

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_ParsesEverySection(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Token.Enabled)
	assert.Equal(t, "super-secret", cfg.Token.Secret)
	assert.Equal(t, 3600, cfg.Token.LifetimeSeconds)
	assert.Equal(t, "/etc/intellirouter/tls/cert.pem", cfg.Trust.CertPath)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Broker.URL)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 5, cfg.CircuitBreaker.TripThreshold)
	assert.Equal(t, 2000, cfg.Transport.DefaultDeadlineMS)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesTakePrecedenceOverYAML(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("INTELLIROUTER_TOKEN_SECRET", "env-secret")
	t.Setenv("INTELLIROUTER_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("INTELLIROUTER_RETRY_RETRYABLE_KINDS", "transport, timeout")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Token.Secret)
	assert.Equal(t, 7, cfg.Retry.MaxAttempts)
	assert.Equal(t, []string{"transport", "timeout"}, cfg.Retry.RetryableKinds)
}

func TestRetryConfig_RetryPolicy_DefaultsRetryableKindsWhenUnset(t *testing.T) {
	rc := RetryConfig{MaxAttempts: 3}
	policy := rc.RetryPolicy()
	assert.Equal(t, types.DefaultRetryableKinds(), policy.RetryableKinds)
}

func TestRetryConfig_RetryPolicy_HonorsConfiguredKinds(t *testing.T) {
	rc := RetryConfig{MaxAttempts: 3, RetryableKinds: []string{"transport"}}
	policy := rc.RetryPolicy()
	assert.True(t, policy.RetryableKinds[types.FailureTransport])
	assert.False(t, policy.RetryableKinds[types.FailureTimeout])
}

func TestTrustConfig_TrustMaterial_ReadsFiles(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")
	caPath := filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(certPath, []byte("cert-bytes"), 0o600))
	require.NoError(t, os.WriteFile(keyPath, []byte("key-bytes"), 0o600))
	require.NoError(t, os.WriteFile(caPath, []byte("ca-bytes"), 0o600))

	tc := TrustConfig{CertPath: certPath, KeyPath: keyPath, CACertPath: caPath}
	trust, err := tc.TrustMaterial()
	require.NoError(t, err)

	assert.Equal(t, []byte("cert-bytes"), trust.CertPEM)
	assert.Equal(t, []byte("key-bytes"), trust.KeyPEM)
	assert.Equal(t, []byte("ca-bytes"), trust.CACertPEM)
}
