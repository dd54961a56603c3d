package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspecian/intellirouter/pkg/types"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{
		Secret:          []byte("test-signing-secret"),
		Issuer:          "intellirouter-test",
		Audience:        "intellirouter-fabric",
		DefaultLifetime: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestTokenService_IssueThenValidate(t *testing.T) {
	svc := newTestTokenService(t)
	identity := types.ServiceIdentity{Name: "router_core", Roles: []string{"route_requests"}}

	signed, issued, err := svc.Issue(identity, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Equal(t, "router_core", issued.Subject)

	validated, err := svc.Validate(signed, "route_requests")
	require.NoError(t, err)
	assert.Equal(t, "router_core", validated.Subject)
	assert.True(t, validated.HasRole("route_requests"))
}

func TestTokenService_ValidateMissingRole(t *testing.T) {
	svc := newTestTokenService(t)
	signed, _, err := svc.Issue(types.ServiceIdentity{Name: "chain_engine"}, 0)
	require.NoError(t, err)

	_, err = svc.Validate(signed, "execute_chain")
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, types.FailureSecurity, fail.Kind)
	assert.Contains(t, fail.Reason, "missing-role")
}

func TestTokenService_ValidateExpired(t *testing.T) {
	svc := newTestTokenService(t)
	signed, _, err := svc.Issue(types.ServiceIdentity{Name: "router_core"}, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = svc.Validate(signed)
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, types.FailureSecurity, fail.Kind)
	assert.Equal(t, "expired", fail.Reason)
}

func TestTokenService_ValidateBadSignature(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenService(TokenConfig{Secret: []byte("a-different-secret")})
	require.NoError(t, err)

	signed, _, err := other.Issue(types.ServiceIdentity{Name: "router_core"}, 0)
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	require.Error(t, err)
	fail, ok := types.AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, types.FailureSecurity, fail.Kind)
}

func TestShouldRefresh(t *testing.T) {
	now := time.Now().UTC()
	issuedAt := now.Add(-80 * time.Minute)
	token := types.AuthToken{IssuedAt: issuedAt, ExpiresAt: issuedAt.Add(time.Hour)}

	assert.True(t, ShouldRefresh(token, now))

	fresh := types.AuthToken{IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, ShouldRefresh(fresh, now))
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService(TokenConfig{})
	assert.Error(t, err)
}
