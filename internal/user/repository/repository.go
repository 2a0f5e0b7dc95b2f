package repository

import (
	"context"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/epakhin/teamdeck/authd/internal/common/db"
	"github.com/epakhin/teamdeck/authd/internal/user/domain"
)

// Directory is the user-lookup port the session core depends on. User
// creation, password handling and profile updates live elsewhere.
type Directory interface {
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

var ErrUserNotFound = pgx.ErrNoRows

type PgDirectory struct {
	pool *pgxpool.Pool
}

func NewPgDirectory(pool *pgxpool.Pool) *PgDirectory {
	return &PgDirectory{pool: pool}
}

func (r *PgDirectory) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, name, role, created_at FROM users WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by id", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgDirectory) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, email, name, role, created_at FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by email", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
