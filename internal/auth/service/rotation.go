package service

import (
	"context"
	"errors"
	"time"

	authrepo "github.com/epakhin/teamdeck/authd/internal/auth/repository"
	"github.com/epakhin/teamdeck/authd/internal/common/clock"
	"github.com/epakhin/teamdeck/authd/internal/common/logger"
	userdomain "github.com/epakhin/teamdeck/authd/internal/user/domain"
	userrepo "github.com/epakhin/teamdeck/authd/internal/user/repository"
)

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// SessionRotationService drives the refresh protocol: verify the presented
// refresh token, cross-check it against the persisted credential, mint a
// fresh pair and retire the old row.
type SessionRotationService struct {
	codec *TokenCodec
	store authrepo.CredentialStore
	users userrepo.Directory
	clock clock.Clock
	log   *logger.Logger
}

func NewSessionRotationService(
	codec *TokenCodec,
	store authrepo.CredentialStore,
	users userrepo.Directory,
	clk clock.Clock,
	log *logger.Logger,
) *SessionRotationService {
	return &SessionRotationService{
		codec: codec,
		store: store,
		users: users,
		clock: clk,
		log:   log,
	}
}

// Rotate exchanges a presented refresh token for a new access/refresh pair.
// Checks run strictly in order, cheapest and most trustworthy first, and
// short-circuit on the first failure. Every trust failure collapses to
// ErrAuthentication so callers cannot probe which check rejected them; the
// true reason goes to the log and metrics only.
//
// The store is never touched before the signature verifies, so unsigned
// garbage causes no persistence I/O.
func (s *SessionRotationService) Rotate(ctx context.Context, presented string) (TokenPair, error) {
	claims, err := s.codec.VerifyRefresh(presented)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "rotation_verify_failed",
		}).Warnf("rotation rejected: refresh token verification failed: %v", err)
		incrementRotationsRejected("signature")
		return TokenPair{}, ErrAuthentication
	}

	stored, err := s.store.FindByToken(ctx, presented)
	if err != nil {
		if errors.Is(err, authrepo.ErrCredentialNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": claims.UserID,
				"action":  "rotation_credential_not_found",
			}).Warn("rotation rejected: no credential for presented token")
			incrementRotationsRejected("unknown")
			return TokenPair{}, ErrAuthentication
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": claims.UserID,
			"action":  "rotation_lookup_failed",
		}).Errorf("rotation failed: credential lookup error: %v", err)
		return TokenPair{}, ErrStorage.WithCause(err)
	}

	// A valid signature whose embedded tokenId does not match the resolved
	// row means a forged or stale token, not a routine miss.
	if claims.TokenID != stored.ID {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":       stored.UserID,
			"credential_id": stored.ID,
			"action":        "rotation_binding_mismatch",
		}).Warn("rotation rejected: refresh claims do not match stored credential")
		incrementRotationsRejected("binding")
		return TokenPair{}, ErrAuthentication
	}

	if stored.IsExpired(s.clock.Now()) {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": stored.UserID,
			"action":  "rotation_credential_expired",
		}).Warn("rotation rejected: credential expired")
		incrementRotationsRejected("expired")
		s.deleteBestEffort(ctx, presented, stored.UserID)
		return TokenPair{}, ErrAuthentication
	}

	user, err := s.users.FindByID(ctx, userdomain.ID(claims.UserID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": claims.UserID,
				"action":  "rotation_owner_missing",
			}).Warn("rotation rejected: credential owner no longer exists")
			incrementRotationsRejected("orphaned")
			s.deleteBestEffort(ctx, presented, claims.UserID)
			return TokenPair{}, ErrAuthentication
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": claims.UserID,
			"action":  "rotation_owner_lookup_failed",
		}).Errorf("rotation failed: owner lookup error: %v", err)
		return TokenPair{}, ErrStorage.WithCause(err)
	}

	accessToken, err := s.codec.IssueAccess(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "rotation_access_issue_failed",
		}).Errorf("rotation failed: access token issue error: %v", err)
		return TokenPair{}, err
	}

	refreshToken, newCredential, err := s.codec.IssueRefresh(string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "rotation_refresh_issue_failed",
		}).Errorf("rotation failed: refresh token issue error: %v", err)
		return TokenPair{}, err
	}

	if err := s.store.Save(ctx, newCredential); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "rotation_save_failed",
		}).Errorf("rotation failed: could not persist new credential: %v", err)
		return TokenPair{}, ErrStorage.WithCause(err)
	}

	// Retiring the old row is best effort: the new session is already
	// persisted and the sweeper will collect any dangling row later.
	if _, err := s.store.DeleteByToken(ctx, presented); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "rotation_delete_old_failed",
		}).Warnf("rotation cleanup failed, stale credential left for sweeper: %v", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "rotation_success",
	}).Info("session rotated")
	incrementSessionsRotated()

	return TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: newCredential.ExpiresAt,
	}, nil
}

// StartSession issues and persists a fresh pair for an already
// authenticated user. The login flow calls this after password
// verification, which is not this service's business.
func (s *SessionRotationService) StartSession(ctx context.Context, user userdomain.User) (TokenPair, error) {
	accessToken, err := s.codec.IssueAccess(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "session_access_issue_failed",
		}).Errorf("session start failed: access token issue error: %v", err)
		return TokenPair{}, err
	}

	refreshToken, credential, err := s.codec.IssueRefresh(string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "session_refresh_issue_failed",
		}).Errorf("session start failed: refresh token issue error: %v", err)
		return TokenPair{}, err
	}

	if err := s.store.Save(ctx, credential); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "session_save_failed",
		}).Errorf("session start failed: could not persist credential: %v", err)
		return TokenPair{}, ErrStorage.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "session_started",
	}).Info("session started")

	return TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: credential.ExpiresAt,
	}, nil
}

// RevokeSession removes the credential behind a presented refresh token.
// Unknown tokens are a no-op: revoking twice is not an error.
func (s *SessionRotationService) RevokeSession(ctx context.Context, presented string) error {
	if presented == "" {
		return nil
	}

	removed, err := s.store.DeleteByToken(ctx, presented)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "revoke_failed",
		}).Errorf("session revoke failed: %v", err)
		return ErrStorage.WithCause(err)
	}

	if removed {
		s.log.WithFields(ctx, logger.Fields{
			"action": "session_revoked",
		}).Info("session revoked")
		incrementSessionsRevoked()
	}

	return nil
}

// RevokeUserSessions removes every live credential owned by a user.
func (s *SessionRotationService) RevokeUserSessions(ctx context.Context, userID string) (int64, error) {
	count, err := s.store.DeleteByUserID(ctx, userID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "revoke_user_sessions_failed",
		}).Errorf("user session revoke failed: %v", err)
		return 0, ErrStorage.WithCause(err)
	}

	if count > 0 {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"count":   count,
			"action":  "user_sessions_revoked",
		}).Info("user sessions revoked")
	}

	return count, nil
}

func (s *SessionRotationService) deleteBestEffort(ctx context.Context, token, userID string) {
	if _, err := s.store.DeleteByToken(ctx, token); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "rotation_cleanup_delete_failed",
		}).Warnf("failed to delete dead credential, leaving it for the sweeper: %v", err)
	}
}
