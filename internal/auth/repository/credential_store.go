package repository

import (
	"context"

	pgx "github.com/jackc/pgx/v4"

	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
)

// CredentialStore is the persistence port for refresh credentials.
//
// DeleteByToken reports whether a row was actually removed so callers can
// treat the old row as a single-use ticket if they need to. DeleteExpired
// is the maintenance sweep; the rotation path never calls it inline.
type CredentialStore interface {
	FindByToken(ctx context.Context, token string) (authdomain.RefreshCredential, error)
	FindByUserID(ctx context.Context, userID string) ([]authdomain.RefreshCredential, error)
	Save(ctx context.Context, credential authdomain.RefreshCredential) error
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

var ErrCredentialNotFound = pgx.ErrNoRows
