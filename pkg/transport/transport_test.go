package transport

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/security"
	"github.com/lspecian/intellirouter/pkg/types"
	"github.com/lspecian/intellirouter/pkg/wire"
)

func selfSignedTrust(t *testing.T, commonName string) types.TrustMaterial {
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
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})

	return types.TrustMaterial{CertPEM: certPEM, KeyPEM: keyPEM, CACertPEM: certPEM}
}

type echoDispatcher struct{}

func (echoDispatcher) Invoke(ctx context.Context, method string, req wire.Envelope) (wire.Envelope, error) {
	return wire.Envelope{CallEnvelope: types.CallEnvelope{Payload: req.Payload}}, nil
}

func (echoDispatcher) InvokeStream(ctx context.Context, method string, req wire.Envelope, send func(wire.Envelope) error) error {
	for i := 0; i < 3; i++ {
		if err := send(wire.Envelope{CallEnvelope: types.CallEnvelope{Payload: req.Payload}}); err != nil {
			return err
		}
	}
	return nil
}

func freePort(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func TestServerClient_UnaryCallRoundTrip(t *testing.T) {
	trust := selfSignedTrust(t, "intellirouter-test")
	tokens, err := security.NewTokenService(security.TokenConfig{Secret: []byte("s"), Issuer: "i", Audience: "a"})
	require.NoError(t, err)

	srv, err := NewServer(ServerConfig{
		Trust:      trust,
		ServerName: "intellirouter-test",
		Tokens:     tokens,
		Dispatcher: echoDispatcher{},
	})
	require.NoError(t, err)

	addr := freePort(t)
	go func() { _ = srv.Serve(addr) }()
	defer srv.Stop()
	time.Sleep(50 * time.Millisecond)

	client, err := Dial(context.Background(), addr, trust, "intellirouter-test")
	require.NoError(t, err)
	defer client.Close()

	signed, _, err := tokens.Issue(types.ServiceIdentity{Name: "router_core", Roles: []string{"route_requests"}}, 0)
	require.NoError(t, err)

	resp, err := client.Call(context.Background(), "Echo", signed, types.CallEnvelope{Payload: []byte("hello")})
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), resp.Payload)
}

func TestServerClient_MissingTokenRejected(t *testing.T) {
	trust := selfSignedTrust(t, "intellirouter-test2")
	tokens, err := security.NewTokenService(security.TokenConfig{Secret: []byte("s")})
	require.NoError(t, err)

	srv, err := NewServer(ServerConfig{Trust: trust, ServerName: "intellirouter-test2", Tokens: tokens, Dispatcher: echoDispatcher{}})
	require.NoError(t, err)

	addr := freePort(t)
	go func() { _ = srv.Serve(addr) }()
	defer srv.Stop()
	time.Sleep(50 * time.Millisecond)

	client, err := Dial(context.Background(), addr, trust, "intellirouter-test2")
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Call(context.Background(), "Echo", "", types.CallEnvelope{Payload: []byte("x")})
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	require.Equal(t, types.FailureSecurity, fail.Kind)
}
