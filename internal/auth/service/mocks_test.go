package service

import (
	"context"
	"testing"
	"time"

	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
	authrepo "github.com/epakhin/teamdeck/authd/internal/auth/repository"
	"github.com/epakhin/teamdeck/authd/internal/common/clock"
	commoncrypto "github.com/epakhin/teamdeck/authd/internal/common/crypto"
	"github.com/epakhin/teamdeck/authd/internal/common/logger"
	userdomain "github.com/epakhin/teamdeck/authd/internal/user/domain"
	userrepo "github.com/epakhin/teamdeck/authd/internal/user/repository"
)

const (
	testAccessSecret  = "test-access-secret-0123456789abcdef"
	testRefreshSecret = "test-refresh-secret-0123456789abcdef"
	testIssuer        = "teamdeck-auth"
	testAudience      = "teamdeck-api"
	testAccessTTL     = 15 * time.Minute
	testRefreshTTL    = 7 * 24 * time.Hour
)

func newTestClock() *clock.MockClock {
	return clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func newTestCodec(clk clock.Clock) *TokenCodec {
	return NewTokenCodec(
		testAccessSecret,
		testRefreshSecret,
		testIssuer,
		testAudience,
		testAccessTTL,
		testRefreshTTL,
		commoncrypto.NewUUIDGenerator(),
		clk,
	)
}

func testUser() userdomain.User {
	return userdomain.User{
		ID:    "user-123",
		Email: "dana@example.com",
		Name:  "Dana",
		Role:  "member",
	}
}

type mockCredentialStore struct {
	findByTokenFunc    func(ctx context.Context, token string) (authdomain.RefreshCredential, error)
	findByUserIDFunc   func(ctx context.Context, userID string) ([]authdomain.RefreshCredential, error)
	saveFunc           func(ctx context.Context, credential authdomain.RefreshCredential) error
	deleteByTokenFunc  func(ctx context.Context, token string) (bool, error)
	deleteByUserIDFunc func(ctx context.Context, userID string) (int64, error)
	deleteExpiredFunc  func(ctx context.Context) (int64, error)
}

func (m *mockCredentialStore) FindByToken(ctx context.Context, token string) (authdomain.RefreshCredential, error) {
	if m.findByTokenFunc != nil {
		return m.findByTokenFunc(ctx, token)
	}
	return authdomain.RefreshCredential{}, authrepo.ErrCredentialNotFound
}

func (m *mockCredentialStore) FindByUserID(ctx context.Context, userID string) ([]authdomain.RefreshCredential, error) {
	if m.findByUserIDFunc != nil {
		return m.findByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCredentialStore) Save(ctx context.Context, credential authdomain.RefreshCredential) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, credential)
	}
	return nil
}

func (m *mockCredentialStore) DeleteByToken(ctx context.Context, token string) (bool, error) {
	if m.deleteByTokenFunc != nil {
		return m.deleteByTokenFunc(ctx, token)
	}
	return false, nil
}

func (m *mockCredentialStore) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	if m.deleteByUserIDFunc != nil {
		return m.deleteByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockCredentialStore) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return 0, nil
}

type mockDirectory struct {
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
}

func (m *mockDirectory) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockDirectory) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func setupRotation(t *testing.T) (*SessionRotationService, *TokenCodec, *mockCredentialStore, *mockDirectory, *clock.MockClock) {
	t.Helper()

	clk := newTestClock()
	codec := newTestCodec(clk)
	store := &mockCredentialStore{}
	users := &mockDirectory{
		findByIDFunc: func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
			user := testUser()
			user.ID = id
			return user, nil
		},
	}

	svc := NewSessionRotationService(codec, store, users, clk, logger.NewNop())
	return svc, codec, store, users, clk
}
