package service

import (
	"strings"

	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
)

const bearerScheme = "Bearer"

// AccessVerifier is the part of TokenCodec the authenticator needs.
type AccessVerifier interface {
	VerifyAccess(tokenString string) (authdomain.AccessClaims, error)
}

// BearerAuthenticator turns an Authorization header into authenticated
// access claims. Structural header problems are validation failures and are
// rejected before the verifier is ever invoked; only a well-formed header
// reaches the cryptographic check.
type BearerAuthenticator struct {
	verifier AccessVerifier
}

func NewBearerAuthenticator(verifier AccessVerifier) *BearerAuthenticator {
	return &BearerAuthenticator{verifier: verifier}
}

func (b *BearerAuthenticator) Authenticate(authorization string) (authdomain.AccessClaims, error) {
	if strings.TrimSpace(authorization) == "" {
		return authdomain.AccessClaims{}, ErrMissingAuthorization
	}

	parts := strings.Split(authorization, " ")
	if len(parts) != 2 || parts[0] != bearerScheme || strings.TrimSpace(parts[1]) == "" {
		return authdomain.AccessClaims{}, ErrMalformedAuthorization
	}

	claims, err := b.verifier.VerifyAccess(parts[1])
	if err != nil {
		incrementBearerValidationsFailed()
		return authdomain.AccessClaims{}, err
	}

	return claims, nil
}

func (b *BearerAuthenticator) HasRole(claims *authdomain.AccessClaims, allowedRoles []string) bool {
	return IsAllowed(claims, allowedRoles)
}
