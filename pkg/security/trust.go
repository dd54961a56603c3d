package security

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/lspecian/intellirouter/pkg/types"
)

// LoadTrustMaterial reads the three PEM files trust establishment needs:
// a local certificate, its private key, and the CA bundle both ends of a
// connection must chain to. It is read once at startup; there is no
// reload path.
func LoadTrustMaterial(certPath, keyPath, caCertPath string) (types.TrustMaterial, error) {
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return types.TrustMaterial{}, types.NewFailure(types.FailureSecurity, "read certificate", err)
	}
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return types.TrustMaterial{}, types.NewFailure(types.FailureSecurity, "read private key", err)
	}
	caPEM, err := os.ReadFile(caCertPath)
	if err != nil {
		return types.TrustMaterial{}, types.NewFailure(types.FailureSecurity, "read CA bundle", err)
	}
	return types.TrustMaterial{CertPEM: certPEM, KeyPEM: keyPEM, CACertPEM: caPEM}, nil
}

// certPool builds an x509.CertPool from a PEM-encoded CA bundle.
func certPool(caCertPEM []byte) (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCertPEM) {
		return nil, fmt.Errorf("no certificates found in CA bundle")
	}
	return pool, nil
}

// ServerTLSConfig builds the listener-side TLS configuration: it presents
// tm's local certificate and requires the peer to present one chaining to
// tm's CA bundle. Mutual TLS is mandatory, there is no optional-client-cert
// mode on the server side.
func ServerTLSConfig(tm types.TrustMaterial, serverName string) (*tls.Config, error) {
	cert, err := tls.X509KeyPair(tm.CertPEM, tm.KeyPEM)
	if err != nil {
		return nil, types.NewFailure(types.FailureSecurity, "parse server certificate/key", err)
	}
	pool, err := certPool(tm.CACertPEM)
	if err != nil {
		return nil, types.NewFailure(types.FailureSecurity, "parse CA bundle", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    pool,
		MinVersion:   tls.VersionTLS13,
		ServerName:   serverName,
	}, nil
}

// ClientTLSConfig builds the dialer-side TLS configuration: it presents
// tm's local certificate and requires the remote server's certificate to
// chain to tm's CA bundle and match serverName (SNI).
func ClientTLSConfig(tm types.TrustMaterial, serverName string) (*tls.Config, error) {
	cert, err := tls.X509KeyPair(tm.CertPEM, tm.KeyPEM)
	if err != nil {
		return nil, types.NewFailure(types.FailureSecurity, "parse client certificate/key", err)
	}
	pool, err := certPool(tm.CACertPEM)
	if err != nil {
		return nil, types.NewFailure(types.FailureSecurity, "parse CA bundle", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS13,
		ServerName:   serverName,
	}, nil
}
