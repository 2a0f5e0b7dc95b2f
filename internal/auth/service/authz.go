package service

import (
	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
)

// IsAllowed reports whether the authenticated identity holds one of the
// allowed roles. An absent identity is never allowed.
func IsAllowed(claims *authdomain.AccessClaims, allowedRoles []string) bool {
	if claims == nil {
		return false
	}
	for _, role := range allowedRoles {
		if claims.Role == role {
			return true
		}
	}
	return false
}
