package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyCredentialID     = errors.New("credential id cannot be empty")
	ErrEmptyCredentialToken  = errors.New("credential token cannot be empty")
	ErrEmptyCredentialUserID = errors.New("credential user id cannot be empty")
)

// RefreshCredential is one persisted refresh session row. Token is the
// opaque string a client presents, the lookup key for the row; ID is also
// embedded in the signed refresh claims, and the two must match on use.
// Instances are immutable: rotation always produces a new credential.
type RefreshCredential struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewRefreshCredential validates and builds a credential. A zero createdAt
// defaults to now. Expired rows are legal: expiry is enforced on use and by
// the sweeper, never at construction.
func NewRefreshCredential(id, token, userID string, expiresAt, createdAt time.Time) (RefreshCredential, error) {
	if strings.TrimSpace(id) == "" {
		return RefreshCredential{}, ErrEmptyCredentialID
	}
	if strings.TrimSpace(token) == "" {
		return RefreshCredential{}, ErrEmptyCredentialToken
	}
	if strings.TrimSpace(userID) == "" {
		return RefreshCredential{}, ErrEmptyCredentialUserID
	}

	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return RefreshCredential{
		ID:        id,
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}

func (c RefreshCredential) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

func (c RefreshCredential) IsValid(now time.Time) bool {
	return !c.IsExpired(now)
}
