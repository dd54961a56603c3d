package security

import "github.com/lspecian/intellirouter/pkg/types"

// Authorizer checks a validated AuthToken's roles against the roles an
// operation declares required and, when one is configured, consulting the
// append-only RoleCatalog so a token cannot exercise a role the catalog does
// not grant its subject, whatever roles the token itself carries.
type Authorizer struct {
	catalog *types.RoleCatalog
}

// NewAuthorizer wraps catalog. A nil catalog means every role the token
// itself carries is trusted as-is; this is the configuration used by
// NewGatewayBuilder when no catalog is supplied (roles are self-asserting).
func NewAuthorizer(catalog *types.RoleCatalog) *Authorizer {
	return &Authorizer{catalog: catalog}
}

// Authorize returns a types.FailureSecurity IpcFailure naming the first
// missing role, or nil if token carries every role in required and, when a
// catalog is configured, the catalog still grants each one to token's
// subject.
func (a *Authorizer) Authorize(token types.AuthToken, required []string) error {
	for _, role := range required {
		if !token.HasRole(role) {
			return types.NewFailure(types.FailureSecurity, "missing-role: "+role, nil)
		}
		if a.catalog != nil && !a.catalog.Allows(token.Subject, role) {
			return types.NewFailure(types.FailureSecurity, "revoked-role: "+role, nil)
		}
	}
	return nil
}
