package domain

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload of a short-lived access token. One closed
// struct per token kind keeps access and refresh shapes apart at the type
// level.
type AccessClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a long-lived refresh token. TokenID must
// equal the ID of the persisted RefreshCredential resolved by the presented
// string.
type RefreshClaims struct {
	TokenID string `json:"tokenId"`
	UserID  string `json:"userId"`
	jwt.RegisteredClaims
}
