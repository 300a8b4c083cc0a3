package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nortis-app/nortis-backend/internal/apperrors"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portsrepo "github.com/nortis-app/nortis-backend/internal/core/ports/repositories"
)

// PgxIncomeRepository persists the single income record each user has.
type PgxIncomeRepository struct {
	BaseRepository
}

func newPgxIncomeRepository(db *pgxpool.Pool) portsrepo.IncomeRepositoryFacade {
	return &PgxIncomeRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.IncomeRepositoryFacade = (*PgxIncomeRepository)(nil)

func (r *PgxIncomeRepository) FindIncomeByUser(ctx context.Context, userID string) (*domain.Income, error) {
	query := `
        SELECT user_id, salary, stipend, created_at, last_updated_at
        FROM incomes
        WHERE user_id = $1;
    `
	var income domain.Income
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&income.UserID,
		&income.Salary,
		&income.Stipend,
		&income.CreatedAt,
		&income.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find income for user %s: %w", userID, err)
	}
	return &income, nil
}

func (r *PgxIncomeRepository) UpsertIncome(ctx context.Context, income domain.Income) error {
	query := `
        INSERT INTO incomes (user_id, salary, stipend, created_at, last_updated_at)
        VALUES ($1, $2, $3, now(), now())
        ON CONFLICT (user_id) DO UPDATE SET
            salary = EXCLUDED.salary,
            stipend = EXCLUDED.stipend,
            last_updated_at = now();
    `
	_, err := r.Pool.Exec(ctx, query, income.UserID, income.Salary, income.Stipend)
	if err != nil {
		return fmt.Errorf("failed to upsert income: %w", err)
	}
	return nil
}
