package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewRefreshCredential_Valid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := now.Add(7 * 24 * time.Hour)

	cred, err := NewRefreshCredential("id-1", "token-1", "user-1", expiresAt, now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cred.ID != "id-1" || cred.Token != "token-1" || cred.UserID != "user-1" {
		t.Errorf("unexpected credential fields: %+v", cred)
	}
	if !cred.ExpiresAt.Equal(expiresAt) {
		t.Errorf("expected expiresAt %v, got %v", expiresAt, cred.ExpiresAt)
	}
	if !cred.CreatedAt.Equal(now) {
		t.Errorf("expected createdAt %v, got %v", now, cred.CreatedAt)
	}
}

func TestNewRefreshCredential_DefaultsCreatedAt(t *testing.T) {
	cred, err := NewRefreshCredential("id-1", "token-1", "user-1", time.Now().Add(time.Hour), time.Time{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cred.CreatedAt.IsZero() {
		t.Error("expected createdAt to default to now")
	}
}

func TestNewRefreshCredential_RejectsBlankFields(t *testing.T) {
	now := time.Now()
	expiresAt := now.Add(time.Hour)

	cases := []struct {
		name    string
		id      string
		token   string
		userID  string
		wantErr error
	}{
		{"empty id", "", "token", "user", ErrEmptyCredentialID},
		{"whitespace id", "   ", "token", "user", ErrEmptyCredentialID},
		{"empty token", "id", "", "user", ErrEmptyCredentialToken},
		{"whitespace token", "id", "\t ", "user", ErrEmptyCredentialToken},
		{"empty user id", "id", "token", "", ErrEmptyCredentialUserID},
		{"whitespace user id", "id", "token", " \n", ErrEmptyCredentialUserID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRefreshCredential(tc.id, tc.token, tc.userID, expiresAt, now)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestRefreshCredential_Expiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cred, err := NewRefreshCredential("id-1", "token-1", "user-1", now.Add(time.Hour), now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cred.IsExpired(now) {
		t.Error("credential should not be expired before expiresAt")
	}
	if !cred.IsValid(now) {
		t.Error("credential should be valid before expiresAt")
	}

	later := now.Add(2 * time.Hour)
	if !cred.IsExpired(later) {
		t.Error("credential should be expired after expiresAt")
	}
	if cred.IsValid(later) {
		t.Error("credential should not be valid after expiresAt")
	}

	// A row may be constructed already expired; it is swept, not rejected.
	stale, err := NewRefreshCredential("id-2", "token-2", "user-1", now.Add(-time.Hour), now.Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !stale.IsExpired(now) {
		t.Error("stale credential should report expired")
	}
}
