package service

import (
	"errors"
	"testing"
	"time"

	commoncrypto "github.com/epakhin/teamdeck/authd/internal/common/crypto"
)

func TestTokenCodec_AccessRoundTrip(t *testing.T) {
	codec := newTestCodec(newTestClock())
	user := testUser()

	tokenString, err := codec.IssueAccess(user)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := codec.VerifyAccess(tokenString)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if claims.UserID != string(user.ID) {
		t.Errorf("expected userId %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != user.Role {
		t.Errorf("expected role %s, got %s", user.Role, claims.Role)
	}
	if claims.Issuer != testIssuer {
		t.Errorf("expected issuer %s, got %s", testIssuer, claims.Issuer)
	}
}

func TestTokenCodec_IssueRefreshBindsCredential(t *testing.T) {
	clk := newTestClock()
	codec := newTestCodec(clk)

	tokenString, cred, err := codec.IssueRefresh("user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cred.Token != tokenString {
		t.Error("credential token must be the signed string itself")
	}
	if cred.UserID != "user-123" {
		t.Errorf("expected userId user-123, got %s", cred.UserID)
	}
	if !cred.ExpiresAt.Equal(clk.Now().Add(testRefreshTTL)) {
		t.Errorf("unexpected expiresAt %v", cred.ExpiresAt)
	}

	claims, err := codec.VerifyRefresh(tokenString)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.TokenID != cred.ID {
		t.Errorf("expected tokenId %s, got %s", cred.ID, claims.TokenID)
	}
	if claims.UserID != cred.UserID {
		t.Errorf("expected userId %s, got %s", cred.UserID, claims.UserID)
	}
}

func TestTokenCodec_CrossUseRejected(t *testing.T) {
	codec := newTestCodec(newTestClock())

	accessToken, err := codec.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	refreshToken, _, err := codec.IssueRefresh("user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := codec.VerifyRefresh(accessToken); !errors.Is(err, ErrAuthentication) {
		t.Errorf("access token must fail refresh verification, got %v", err)
	}
	if _, err := codec.VerifyAccess(refreshToken); !errors.Is(err, ErrAuthentication) {
		t.Errorf("refresh token must fail access verification, got %v", err)
	}
}

func TestTokenCodec_ExpiredAccessRejected(t *testing.T) {
	clk := newTestClock()
	codec := newTestCodec(clk)

	tokenString, err := codec.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	clk.Advance(testAccessTTL + time.Minute)

	if _, err := codec.VerifyAccess(tokenString); !errors.Is(err, ErrAuthentication) {
		t.Errorf("expected authentication error for expired token, got %v", err)
	}
}

func TestTokenCodec_ForeignSecretRejected(t *testing.T) {
	clk := newTestClock()
	codec := newTestCodec(clk)
	foreign := NewTokenCodec(
		"another-access-secret-0123456789abc",
		"another-refresh-secret-0123456789ab",
		testIssuer,
		testAudience,
		testAccessTTL,
		testRefreshTTL,
		commoncrypto.NewUUIDGenerator(),
		clk,
	)

	accessToken, err := foreign.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	refreshToken, _, err := foreign.IssueRefresh("user-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := codec.VerifyAccess(accessToken); !errors.Is(err, ErrAuthentication) {
		t.Errorf("expected authentication error, got %v", err)
	}
	if _, err := codec.VerifyRefresh(refreshToken); !errors.Is(err, ErrAuthentication) {
		t.Errorf("expected authentication error, got %v", err)
	}
}

func TestTokenCodec_MalformedTokensRejected(t *testing.T) {
	codec := newTestCodec(newTestClock())

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		if _, err := codec.VerifyAccess(tokenString); !errors.Is(err, ErrAuthentication) {
			t.Errorf("VerifyAccess(%q): expected authentication error, got %v", tokenString, err)
		}
		if _, err := codec.VerifyRefresh(tokenString); !errors.Is(err, ErrAuthentication) {
			t.Errorf("VerifyRefresh(%q): expected authentication error, got %v", tokenString, err)
		}
	}
}
