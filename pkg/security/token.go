package security

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lspecian/intellirouter/pkg/metrics"
	"github.com/lspecian/intellirouter/pkg/types"
)

// claims is the JWT claim set an AuthToken round-trips through. Roles ride
// as a plain string slice claim; nothing here is reflected, the mapping to
// types.AuthToken is explicit in tokenFromClaims.
type claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenConfig parameterizes a TokenService: the HMAC signing secret, the
// issuer and audience stamped on every issued token, and the default
// lifetime issue uses when the caller doesn't specify one.
type TokenConfig struct {
	Secret          []byte
	Issuer          string
	Audience        string
	DefaultLifetime time.Duration
}

// TokenService issues and validates signed AuthToken credentials. Its
// config, signing secret included, sits behind an RWMutex that Issue and
// Validate take for reading only, so both run concurrently. It keeps no
// refresh state and has no refresh operation: a caller re-issues a token
// itself, checking ShouldRefresh and calling Issue (see pkg/gateway's
// tokenHolder).
type TokenService struct {
	mu     sync.RWMutex
	config TokenConfig
}

// NewTokenService constructs a TokenService from config. An empty secret is
// a configuration error: token issuance never falls back to an unsigned or
// zero-value key.
func NewTokenService(config TokenConfig) (*TokenService, error) {
	if len(config.Secret) == 0 {
		return nil, fmt.Errorf("intellirouter/security: token signing secret must not be empty")
	}
	if config.DefaultLifetime <= 0 {
		config.DefaultLifetime = time.Hour
	}
	return &TokenService{config: config}, nil
}

// Issue signs a new AuthToken for identity, carrying identity's roles and
// expiring after lifetime (or the service default when lifetime is zero).
func (s *TokenService) Issue(identity types.ServiceIdentity, lifetime time.Duration) (string, types.AuthToken, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	if lifetime <= 0 {
		lifetime = cfg.DefaultLifetime
	}
	now := time.Now().UTC()
	expiresAt := now.Add(lifetime)

	c := claims{
		Roles: identity.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Name,
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(cfg.Secret)
	if err != nil {
		return "", types.AuthToken{}, types.NewFailure(types.FailureSecurity, "sign token", err)
	}

	if len(identity.Roles) == 0 {
		metrics.TokensIssuedTotal.WithLabelValues("none").Inc()
	}
	for _, role := range identity.Roles {
		metrics.TokensIssuedTotal.WithLabelValues(role).Inc()
	}

	return signed, types.AuthToken{
		Subject:   identity.Name,
		Issuer:    cfg.Issuer,
		Audience:  cfg.Audience,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
		Roles:     identity.Roles,
	}, nil
}

// Validate parses and verifies a signed token string, checks it against
// requiredRoles, and returns the decoded AuthToken. Every failure path
// returns a types.FailureSecurity IpcFailure carrying a distinguishing
// Reason ("expired", "bad-signature", "wrong-audience", "wrong-issuer",
// "missing-role"), never a bare error, per the base authentication policy.
func (s *TokenService) Validate(tokenString string, requiredRoles ...string) (types.AuthToken, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		reason := "bad-signature"
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "expired"
		}
		return types.AuthToken{}, types.NewFailure(types.FailureSecurity, reason, err)
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return types.AuthToken{}, types.NewFailure(types.FailureSecurity, "bad-signature", nil)
	}

	if cfg.Issuer != "" && c.Issuer != cfg.Issuer {
		return types.AuthToken{}, types.NewFailure(types.FailureSecurity, "wrong-issuer", nil)
	}
	if cfg.Audience != "" && !containsAudience(c.Audience, cfg.Audience) {
		return types.AuthToken{}, types.NewFailure(types.FailureSecurity, "wrong-audience", nil)
	}

	at := tokenFromClaims(c)
	if at.Expired(time.Now().UTC()) {
		return types.AuthToken{}, types.NewFailure(types.FailureSecurity, "expired", nil)
	}
	for _, role := range requiredRoles {
		if !at.HasRole(role) {
			return types.AuthToken{}, types.NewFailure(types.FailureSecurity, "missing-role: "+role, nil)
		}
	}
	return at, nil
}

// ShouldRefresh reports whether token has crossed 80% of its lifetime and
// should be replaced before it is used again, per the base refresh policy.
// A token already expired is also due for refresh (callers must still
// treat it as rejected until a fresh one is issued).
func ShouldRefresh(token types.AuthToken, now time.Time) bool {
	total := token.ExpiresAt.Sub(token.IssuedAt)
	if total <= 0 {
		return true
	}
	elapsed := now.Sub(token.IssuedAt)
	return elapsed >= (total*8)/10
}

func tokenFromClaims(c *claims) types.AuthToken {
	var issuedAt, expiresAt time.Time
	if c.IssuedAt != nil {
		issuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		expiresAt = c.ExpiresAt.Time
	}
	aud := ""
	if len(c.Audience) > 0 {
		aud = c.Audience[0]
	}
	return types.AuthToken{
		Subject:   c.Subject,
		Issuer:    c.Issuer,
		Audience:  aud,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Roles:     c.Roles,
	}
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

