package client

import (
	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
)

// ClaimsState describes what the client currently knows about the signed-in
// identity. Resolving means a lookup is still in flight and no decision
// should be rendered yet.
type ClaimsState int

const (
	ClaimsResolving ClaimsState = iota
	ClaimsAbsent
	ClaimsPresent
)

// Guard renders the client-side role decision for a view. While claims are
// still resolving, ok is false and the decision must be ignored. Absent
// claims deny to sign-in; present claims defer to the shared Authorize rule,
// so server and client can never disagree on a role check.
func Guard(state ClaimsState, claims *auth.Claims, allowed ...domain.Role) (auth.Decision, bool) {
	switch state {
	case ClaimsResolving:
		return auth.Decision{}, false
	case ClaimsAbsent:
		return auth.DenyRedirect(auth.SignInPath), true
	default:
		return auth.Authorize(claims, allowed...), true
	}
}
