package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nortis-app/nortis-backend/internal/apperrors"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portsrepo "github.com/nortis-app/nortis-backend/internal/core/ports/repositories"
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// PgxUserRepository persists account holders.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (user_id, username, password_hash, name, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.CreatedAt,
		user.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, `WHERE user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, `WHERE username = $1`, username)
}

func (r *PgxUserRepository) findUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
        SELECT user_id, username, password_hash, name, created_at, last_updated_at
        FROM users ` + where + `;`
	var user domain.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&user.UserID,
		&user.Username,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
