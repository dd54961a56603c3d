package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

// selfSignedPEM returns a self-signed certificate and key PEM pair for
// commonName, usable as both a CA bundle (it signs itself) and a leaf
// certificate in these tests.
func selfSignedPEM(t *testing.T, commonName string) (certPEM, keyPEM []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: commonName},
		NotBefore:             time.Now().Add(-time.Minute),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{commonName},
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM
}

func TestServerTLSConfig(t *testing.T) {
	certPEM, keyPEM := selfSignedPEM(t, "intellirouter-test")
	tm := types.TrustMaterial{CertPEM: certPEM, KeyPEM: keyPEM, CACertPEM: certPEM}

	cfg, err := ServerTLSConfig(tm, "intellirouter-test")
	require.NoError(t, err)
	require.Len(t, cfg.Certificates, 1)
	require.NotNil(t, cfg.ClientCAs)
}

func TestClientTLSConfig(t *testing.T) {
	certPEM, keyPEM := selfSignedPEM(t, "intellirouter-test")
	tm := types.TrustMaterial{CertPEM: certPEM, KeyPEM: keyPEM, CACertPEM: certPEM}

	cfg, err := ClientTLSConfig(tm, "intellirouter-test")
	require.NoError(t, err)
	require.Len(t, cfg.Certificates, 1)
	require.NotNil(t, cfg.RootCAs)
}

func TestServerTLSConfig_BadCABundle(t *testing.T) {
	certPEM, keyPEM := selfSignedPEM(t, "intellirouter-test")
	tm := types.TrustMaterial{CertPEM: certPEM, KeyPEM: keyPEM, CACertPEM: []byte("not a cert")}

	_, err := ServerTLSConfig(tm, "intellirouter-test")
	require.Error(t, err)
}

func TestLoadTrustMaterial_MissingFile(t *testing.T) {
	_, err := LoadTrustMaterial("/nonexistent/cert.pem", "/nonexistent/key.pem", "/nonexistent/ca.pem")
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	require.Equal(t, types.FailureSecurity, fail.Kind)
}
