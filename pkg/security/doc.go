/*
Package security establishes the two trust surfaces the fabric requires
before any call or event crosses a process boundary.

# Mutual TLS

TrustMaterial (pkg/types) is the triple {local certificate, local private
key, trusted CA bundle}, loaded once at startup from three PEM files and
referenced read-only afterward; certificate hot-reload is explicitly out of
scope. LoadTrustMaterial reads the files; ServerTLSConfig and
ClientTLSConfig turn a loaded TrustMaterial into a *tls.Config requiring
TLS 1.3 and verifying the peer against the CA bundle in both directions.
Any failure here — an unreadable file, bad PEM, an unparsable CA bundle —
is reported as a types.FailureSecurity IpcFailure, never a bare error.
Chain verification and server-name checks run later, in the TLS handshake
inside gRPC; a handshake failure reaches a transport.Client caller as the
Unavailable status's FailureConnection, not as FailureSecurity.

# Tokens

TokenService issues and validates signed bearer tokens carrying a subject,
issuer, audience, expiry, and role set (types.AuthToken), using HMAC-SHA256
via github.com/golang-jwt/jwt/v5. A RoleCatalog (pkg/types) decides which
subjects may hold which roles; TokenService only signs and verifies, it
never looks tokens up in a table the way a session store would.
*/
package security
