package auth

import "github.com/medicore/hospital-system/internal/core/domain"

// Redirect targets handed back to callers on a deny decision.
const (
	SignInPath    = "/sign-in"
	DashboardPath = "/dashboard"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	// RedirectTo is set only when Allowed is false: SignInPath when the
	// caller is unauthenticated, DashboardPath when merely under-privileged.
	RedirectTo string
}

// Allowed is the positive decision.
var Allowed = Decision{Allowed: true}

// DenyRedirect builds a deny decision pointing at target.
func DenyRedirect(target string) Decision {
	return Decision{RedirectTo: target}
}

// Authorize is the single role-guard decision point. It is deterministic and
// performs no I/O: absent claims always deny to sign-in, a role outside the
// allowed set denies to the dashboard, a match allows.
func Authorize(claims *Claims, allowed ...domain.Role) Decision {
	if claims == nil || claims.Subject == "" {
		return DenyRedirect(SignInPath)
	}
	for _, role := range allowed {
		if claims.Role == role {
			return Allowed
		}
	}
	return DenyRedirect(DashboardPath)
}
