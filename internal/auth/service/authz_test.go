package service

import (
	"testing"

	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
)

func TestIsAllowed(t *testing.T) {
	member := &authdomain.AccessClaims{UserID: "u1", Role: "member"}
	admin := &authdomain.AccessClaims{UserID: "u2", Role: "admin"}

	cases := []struct {
		name    string
		claims  *authdomain.AccessClaims
		allowed []string
		want    bool
	}{
		{"nil identity", nil, []string{"admin"}, false},
		{"role present", admin, []string{"admin"}, true},
		{"role among several", member, []string{"admin", "member"}, true},
		{"role absent", member, []string{"admin"}, false},
		{"no roles allowed", admin, nil, false},
		{"empty allowed list", admin, []string{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAllowed(tc.claims, tc.allowed); got != tc.want {
				t.Errorf("IsAllowed(%v, %v) = %v, want %v", tc.claims, tc.allowed, got, tc.want)
			}
		})
	}
}

func TestBearerAuthenticator_HasRole(t *testing.T) {
	bearer := NewBearerAuthenticator(&mockVerifier{})

	if !bearer.HasRole(&authdomain.AccessClaims{Role: "admin"}, []string{"admin"}) {
		t.Error("expected admin to be allowed")
	}
	if bearer.HasRole(nil, []string{"admin"}) {
		t.Error("expected absent identity to be denied")
	}
}
