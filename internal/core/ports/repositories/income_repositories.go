package repositories

import (
	"context"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
)

// IncomeRepositoryFacade persists the single per-user income record.
type IncomeRepositoryFacade interface {
	// FindIncomeByUser retrieves the user's income record. Returns
	// apperrors.ErrNotFound when the user has never saved one.
	FindIncomeByUser(ctx context.Context, userID string) (*domain.Income, error)

	// UpsertIncome creates or overwrites the user's income record.
	UpsertIncome(ctx context.Context, income domain.Income) error
}
