package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medicore/hospital-system/internal/core/domain"
)

func claimsWithRole(role domain.Role) *Claims {
	return &Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_1"},
	}
}

func TestAuthorize_AbsentClaims(t *testing.T) {
	d := Authorize(nil, domain.RoleAdmin)
	if d.Allowed || d.RedirectTo != SignInPath {
		t.Fatalf("nil claims: expected deny to %s, got %+v", SignInPath, d)
	}

	d = Authorize(&Claims{}, domain.RoleAdmin)
	if d.Allowed || d.RedirectTo != SignInPath {
		t.Fatalf("empty subject: expected deny to %s, got %+v", SignInPath, d)
	}
}

func TestAuthorize_RoleMembership(t *testing.T) {
	cases := []struct {
		role    domain.Role
		allowed []domain.Role
		want    Decision
	}{
		{domain.RoleAdmin, []domain.Role{domain.RoleAdmin}, Allowed},
		{domain.RoleDoctor, []domain.Role{domain.RoleAdmin, domain.RoleDoctor}, Allowed},
		{domain.RolePatient, []domain.Role{domain.RoleAdmin}, DenyRedirect(DashboardPath)},
		{domain.RoleReceptionist, []domain.Role{domain.RoleDoctor, domain.RolePatient}, DenyRedirect(DashboardPath)},
	}

	for _, tc := range cases {
		got := Authorize(claimsWithRole(tc.role), tc.allowed...)
		if got != tc.want {
			t.Fatalf("role %s vs %v: expected %+v, got %+v", tc.role, tc.allowed, tc.want, got)
		}
	}
}

func TestAuthorize_EmptyAllowedSet(t *testing.T) {
	d := Authorize(claimsWithRole(domain.RoleAdmin))
	if d.Allowed || d.RedirectTo != DashboardPath {
		t.Fatalf("empty allowed set: expected deny to %s, got %+v", DashboardPath, d)
	}
}
