package gateway

import (
	"sync"
	"time"

	"github.com/lspecian/intellirouter/pkg/security"
	"github.com/lspecian/intellirouter/pkg/types"
)

// tokenHolder keeps one client's signed bearer token fresh, re-issuing it
// once it crosses security.ShouldRefresh's 80%-of-lifetime threshold rather
// than waiting for the server to reject an expired one.
type tokenHolder struct {
	mu       sync.Mutex
	tokens   *security.TokenService
	identity types.ServiceIdentity
	lifetime time.Duration
	signed   string
	decoded  types.AuthToken
}

func newTokenHolder(tokens *security.TokenService, identity types.ServiceIdentity, lifetime time.Duration) (*tokenHolder, error) {
	h := &tokenHolder{tokens: tokens, identity: identity, lifetime: lifetime}
	if err := h.refreshLocked(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *tokenHolder) refreshLocked() error {
	signed, decoded, err := h.tokens.Issue(h.identity, h.lifetime)
	if err != nil {
		return err
	}
	h.signed = signed
	h.decoded = decoded
	return nil
}

// Token returns the current signed token, refreshing it first if it is due.
// A refresh failure is swallowed and the stale token returned; the call
// this token rides on will then fail server-side with a clear
// FailureSecurity, which is no worse than failing here with no call
// attempted at all.
func (h *tokenHolder) Token() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if security.ShouldRefresh(h.decoded, time.Now().UTC()) {
		_ = h.refreshLocked()
	}
	return h.signed
}
