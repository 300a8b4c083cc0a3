package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nortis-app/nortis-backend/internal/apperrors"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portsrepo "github.com/nortis-app/nortis-backend/internal/core/ports/repositories"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// IncomeService manages the single per-user income record.
type IncomeService struct {
	incomeRepo portsrepo.IncomeRepositoryFacade
}

// NewIncomeService creates a new IncomeService.
func NewIncomeService(incomeRepo portsrepo.IncomeRepositoryFacade) *IncomeService {
	return &IncomeService{incomeRepo: incomeRepo}
}

// GetIncome retrieves the user's income. A user who never saved one gets a
// zero-valued record rather than an error.
func (s *IncomeService) GetIncome(ctx context.Context, userID string) (domain.Income, error) {
	income, err := s.incomeRepo.FindIncomeByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Income{UserID: userID}, nil
		}
		return domain.Income{}, fmt.Errorf("failed to get income: %w", err)
	}
	return *income, nil
}

// UpdateIncome overwrites salary and stipend from localized currency
// strings. Malformed values coerce to zero, matching the ledger's lenient
// currency boundary.
func (s *IncomeService) UpdateIncome(ctx context.Context, userID string, req dto.UpdateIncomeRequest) (domain.Income, error) {
	income := domain.Income{
		UserID:  userID,
		Salary:  utils.ParseBRL(req.Salary),
		Stipend: utils.ParseBRL(req.Stipend),
	}
	if err := s.incomeRepo.UpsertIncome(ctx, income); err != nil {
		return domain.Income{}, fmt.Errorf("failed to update income: %w", err)
	}
	return income, nil
}
