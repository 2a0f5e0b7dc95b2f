package service

import (
	"errors"
	"testing"

	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
	commonerrors "github.com/epakhin/teamdeck/authd/internal/common/errors"
)

type mockVerifier struct {
	verifyFunc func(tokenString string) (authdomain.AccessClaims, error)
	calls      int
}

func (m *mockVerifier) VerifyAccess(tokenString string) (authdomain.AccessClaims, error) {
	m.calls++
	if m.verifyFunc != nil {
		return m.verifyFunc(tokenString)
	}
	return authdomain.AccessClaims{}, ErrAuthentication
}

func TestBearerAuthenticator_StructuralFailures(t *testing.T) {
	cases := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"absent header", "", ErrMissingAuthorization},
		{"blank header", "   ", ErrMissingAuthorization},
		{"wrong scheme", "Token abc", ErrMalformedAuthorization},
		{"scheme only", "Bearer", ErrMalformedAuthorization},
		{"blank token", "Bearer ", ErrMalformedAuthorization},
		{"lowercase scheme", "bearer abc", ErrMalformedAuthorization},
		{"three segments", "Bearer abc def", ErrMalformedAuthorization},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &mockVerifier{}
			bearer := NewBearerAuthenticator(verifier)

			_, err := bearer.Authenticate(tc.header)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if !commonerrors.HasCategory(err, commonerrors.CategoryValidation) {
				t.Errorf("expected a validation failure, got %v", err)
			}
			if verifier.calls != 0 {
				t.Error("verifier must not be invoked on a structurally invalid header")
			}
		})
	}
}

func TestBearerAuthenticator_DelegatesToVerifier(t *testing.T) {
	verifier := &mockVerifier{
		verifyFunc: func(tokenString string) (authdomain.AccessClaims, error) {
			if tokenString != "valid-token" {
				t.Errorf("expected token valid-token, got %s", tokenString)
			}
			return authdomain.AccessClaims{UserID: "user-123", Email: "dana@example.com", Role: "member"}, nil
		},
	}
	bearer := NewBearerAuthenticator(verifier)

	claims, err := bearer.Authenticate("Bearer valid-token")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("expected userId user-123, got %s", claims.UserID)
	}
	if verifier.calls != 1 {
		t.Errorf("expected exactly one verifier call, got %d", verifier.calls)
	}
}

func TestBearerAuthenticator_PropagatesAuthenticationFailure(t *testing.T) {
	bearer := NewBearerAuthenticator(&mockVerifier{})

	_, err := bearer.Authenticate("Bearer tampered-token")
	if !errors.Is(err, ErrAuthentication) {
		t.Errorf("expected authentication error, got %v", err)
	}
	if !commonerrors.HasCategory(err, commonerrors.CategoryUnauthorized) {
		t.Errorf("expected an unauthorized failure, got %v", err)
	}
}

func TestBearerAuthenticator_VerifiesRealToken(t *testing.T) {
	codec := newTestCodec(newTestClock())
	bearer := NewBearerAuthenticator(codec)

	tokenString, err := codec.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := bearer.Authenticate("Bearer " + tokenString)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.Email != "dana@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}
