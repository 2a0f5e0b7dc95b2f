package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	authdomain "github.com/epakhin/teamdeck/authd/internal/auth/domain"
	"github.com/epakhin/teamdeck/authd/internal/common/db"
)

type PgCredentialStore struct {
	pool *pgxpool.Pool
}

func NewPgCredentialStore(pool *pgxpool.Pool) *PgCredentialStore {
	return &PgCredentialStore{pool: pool}
}

func (s *PgCredentialStore) FindByToken(ctx context.Context, token string) (authdomain.RefreshCredential, error) {
	start := time.Now()
	row := s.pool.QueryRow(
		ctx,
		`SELECT id, token, user_id, expires_at, created_at
		 FROM refresh_credentials
		 WHERE token = $1`,
		token,
	)

	var cred authdomain.RefreshCredential
	err := row.Scan(&cred.ID, &cred.Token, &cred.UserID, &cred.ExpiresAt, &cred.CreatedAt)
	if err := db.HandleQueryError(err, ErrCredentialNotFound, "find credential by token", start); err != nil {
		return authdomain.RefreshCredential{}, err
	}
	return cred, nil
}

func (s *PgCredentialStore) FindByUserID(ctx context.Context, userID string) ([]authdomain.RefreshCredential, error) {
	start := time.Now()
	rows, err := s.pool.Query(
		ctx,
		`SELECT id, token, user_id, expires_at, created_at
		 FROM refresh_credentials
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "find credentials by user", start)
	}
	defer rows.Close()

	var creds []authdomain.RefreshCredential
	for rows.Next() {
		var cred authdomain.RefreshCredential
		if err := rows.Scan(&cred.ID, &cred.Token, &cred.UserID, &cred.ExpiresAt, &cred.CreatedAt); err != nil {
			return nil, db.HandleQueryError(err, nil, "scan credentials by user", start)
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "iterate credentials by user", start)
	}

	db.MeasureQueryDuration("find credentials by user", start)
	return creds, nil
}

func (s *PgCredentialStore) Save(ctx context.Context, credential authdomain.RefreshCredential) error {
	start := time.Now()
	_, err := s.pool.Exec(
		ctx,
		`INSERT INTO refresh_credentials (id, token, user_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		 SET token = EXCLUDED.token,
		     user_id = EXCLUDED.user_id,
		     expires_at = EXCLUDED.expires_at,
		     created_at = EXCLUDED.created_at`,
		credential.ID,
		credential.Token,
		credential.UserID,
		credential.ExpiresAt,
		credential.CreatedAt,
	)
	return db.HandleExecError(err, "save credential", start)
}

func (s *PgCredentialStore) DeleteByToken(ctx context.Context, token string) (bool, error) {
	start := time.Now()
	res, err := s.pool.Exec(
		ctx,
		`DELETE FROM refresh_credentials WHERE token = $1`,
		token,
	)
	if err != nil {
		return false, db.HandleExecError(err, "delete credential by token", start)
	}
	db.MeasureQueryDuration("delete credential by token", start)
	return res.RowsAffected() > 0, nil
}

func (s *PgCredentialStore) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	start := time.Now()
	res, err := s.pool.Exec(
		ctx,
		`DELETE FROM refresh_credentials WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return 0, db.HandleExecError(err, "delete credentials by user", start)
	}
	db.MeasureQueryDuration("delete credentials by user", start)
	return res.RowsAffected(), nil
}

func (s *PgCredentialStore) DeleteExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	res, err := s.pool.Exec(
		ctx,
		`DELETE FROM refresh_credentials WHERE expires_at < NOW()`,
	)
	if err != nil {
		return 0, db.HandleExecError(err, "delete expired credentials", start)
	}
	db.MeasureQueryDuration("delete expired credentials", start)
	return res.RowsAffected(), nil
}
