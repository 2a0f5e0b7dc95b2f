package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
	"github.com/epakhin/teamdeck/authd/internal/common/clock"
	commoncrypto "github.com/epakhin/teamdeck/authd/internal/common/crypto"
	userdomain "github.com/epakhin/teamdeck/authd/internal/user/domain"
)

// TokenCodec signs and verifies the two token kinds. The secrets are
// independent: an access token presented for refresh verification (or the
// other way around) fails the signature check.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	audience      string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	idGenerator   commoncrypto.IDGenerator
	clock         clock.Clock
}

func NewTokenCodec(
	accessSecret string,
	refreshSecret string,
	issuer string,
	audience string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
) *TokenCodec {
	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		audience:      audience,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		idGenerator:   idGenerator,
		clock:         clk,
	}
}

func (c *TokenCodec) IssueAccess(user userdomain.User) (string, error) {
	now := c.clock.Now()
	claims := authdomain.AccessClaims{
		UserID: string(user.ID),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(c.accessSecret)
	if err != nil {
		return "", err
	}

	incrementAccessTokensIssued()
	return tokenString, nil
}

// IssueRefresh mints a signed refresh token and the credential row that
// belongs to it. The signed string doubles as the opaque lookup key, so the
// returned credential stores it verbatim.
func (c *TokenCodec) IssueRefresh(userID string) (string, authdomain.RefreshCredential, error) {
	id, err := c.idGenerator.NewID()
	if err != nil {
		return "", authdomain.RefreshCredential{}, err
	}

	now := c.clock.Now()
	expiresAt := now.Add(c.refreshTTL)
	claims := authdomain.RefreshClaims{
		TokenID: id,
		UserID:  userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(c.refreshSecret)
	if err != nil {
		return "", authdomain.RefreshCredential{}, err
	}

	credential, err := authdomain.NewRefreshCredential(id, tokenString, userID, expiresAt, now)
	if err != nil {
		return "", authdomain.RefreshCredential{}, err
	}

	incrementRefreshCredentialsIssued()
	return tokenString, credential, nil
}

func (c *TokenCodec) VerifyAccess(tokenString string) (authdomain.AccessClaims, error) {
	var claims authdomain.AccessClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			return c.accessSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		return authdomain.AccessClaims{}, ErrAuthentication.WithCause(err)
	}
	if claims.UserID == "" || claims.Email == "" || claims.Role == "" {
		return authdomain.AccessClaims{}, ErrAuthentication.WithCause(errors.New("missing access claims"))
	}
	return claims, nil
}

func (c *TokenCodec) VerifyRefresh(tokenString string) (authdomain.RefreshClaims, error) {
	var claims authdomain.RefreshClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			return c.refreshSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		return authdomain.RefreshClaims{}, ErrAuthentication.WithCause(err)
	}
	if claims.TokenID == "" || claims.UserID == "" {
		return authdomain.RefreshClaims{}, ErrAuthentication.WithCause(errors.New("missing refresh claims"))
	}
	return claims, nil
}
