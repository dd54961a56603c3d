package types

import "time"

// ServiceIdentity names a service participating in the fabric and the fixed
// set of roles it is allowed to carry on an issued token. Identities are
// created once at startup and never mutated.
type ServiceIdentity struct {
	Name  string
	Roles []string
}

// HasRole reports whether the identity's role set contains role.
func (s ServiceIdentity) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AuthToken is the decoded, validated form of a signed bearer credential.
// Receivers never see the raw signed blob after TokenService.Validate
// succeeds; they see this struct.
type AuthToken struct {
	Subject   string
	Issuer    string
	Audience  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Roles     []string
}

// HasRole reports whether the token carries role.
func (t AuthToken) HasRole(role string) bool {
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Expired reports whether the token's expires-at has passed as of now.
// Clock skew tolerance is zero per the base policy.
func (t AuthToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TrustMaterial is the triple of local certificate, local private key, and
// trusted CA bundle used to establish mutual TLS. Loaded once from disk at
// startup and referenced read-only afterward.
type TrustMaterial struct {
	CertPEM   []byte
	KeyPEM    []byte
	CACertPEM []byte
}

// RoleCatalog is an append-only mapping from (service name, role name) to
// presence, consulted on every authorization check.
type RoleCatalog struct {
	grants map[string]map[string]bool
}

// NewRoleCatalog returns an empty catalog.
func NewRoleCatalog() *RoleCatalog {
	return &RoleCatalog{grants: make(map[string]map[string]bool)}
}

// Grant records that service may hold role. Safe to call only during
// configuration; not synchronized for concurrent mutation.
func (c *RoleCatalog) Grant(service, role string) {
	roles, ok := c.grants[service]
	if !ok {
		roles = make(map[string]bool)
		c.grants[service] = roles
	}
	roles[role] = true
}

// Allows reports whether service has been granted role.
func (c *RoleCatalog) Allows(service, role string) bool {
	roles, ok := c.grants[service]
	if !ok {
		return false
	}
	return roles[role]
}

// RolesFor returns the roles granted to service.
func (c *RoleCatalog) RolesFor(service string) []string {
	roles, ok := c.grants[service]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(roles))
	for r := range roles {
		out = append(out, r)
	}
	return out
}
