package services

import (
	"context"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
	"github.com/nortis-app/nortis-backend/internal/dto"
)

// IncomeSvcFacade manages the single per-user income record.
type IncomeSvcFacade interface {
	// GetIncome retrieves the user's income record. A user who never saved
	// one gets a zero-valued record, not an error.
	GetIncome(ctx context.Context, userID string) (domain.Income, error)

	// UpdateIncome overwrites salary and stipend from localized currency
	// strings.
	UpdateIncome(ctx context.Context, userID string, req dto.UpdateIncomeRequest) (domain.Income, error)
}
