package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nortis-app/nortis-backend/internal/apperrors"
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portsrepo "github.com/nortis-app/nortis-backend/internal/core/ports/repositories"
	"github.com/nortis-app/nortis-backend/internal/dto"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// LedgerService implements the obligation ledger: it owns a user's one-off
// and recurring obligations, projects them onto calendar periods and tracks
// payment state per period.
//
// The due-date countdown is anchored at the start of the current civil day
// in one fixed reference location, so the count is deterministic no matter
// where the caller is. Day distances are rounded to the nearest whole day
// from midnight.
type LedgerService struct {
	obligationRepo portsrepo.ObligationRepositoryFacade
	incomeRepo     portsrepo.IncomeRepositoryFacade
	loc            *time.Location
	now            func() time.Time
}

// NewLedgerService creates a new LedgerService. loc is the reference
// timezone used to decide what "today" means for the countdown.
func NewLedgerService(obligationRepo portsrepo.ObligationRepositoryFacade, incomeRepo portsrepo.IncomeRepositoryFacade, loc *time.Location) *LedgerService {
	return &LedgerService{
		obligationRepo: obligationRepo,
		incomeRepo:     incomeRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// today returns the start of the current civil day in the reference
// location.
func (s *LedgerService) today() time.Time {
	return domain.StartOfDay(s.now().In(s.loc))
}

// AddObligation creates a one-off or recurring obligation. The amount is a
// localized currency string; non-numeric input coerces to zero. The
// obligation is durably persisted before the call returns.
func (s *LedgerService) AddObligation(ctx context.Context, userID string, req dto.CreateObligationRequest) (*domain.Obligation, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("obligation name is required: %w", apperrors.ErrValidation)
	}
	anchor, err := parseAnchorDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	now := s.now()
	obligation := domain.Obligation{
		ObligationID: uuid.NewString(),
		UserID:       userID,
		Name:         req.Description,
		Amount:       utils.ParseBRL(req.Value),
		AnchorDate:   anchor,
		IsRecurring:  req.IsRecurring,
		PaidPeriods:  []string{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
		return nil, fmt.Errorf("failed to save obligation: %w", err)
	}
	return &obligation, nil
}

// EditObligation overwrites name, amount and anchor date of an existing
// obligation. The recurrence flag and payment history are untouched: for a
// recurring obligation a new anchor day changes future due dates only, and
// periods already settled stay settled (history is keyed by period string,
// not by date).
func (s *LedgerService) EditObligation(ctx context.Context, userID string, obligationID string, req dto.UpdateObligationRequest) (*domain.Obligation, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("obligation name is required: %w", apperrors.ErrValidation)
	}
	anchor, err := parseAnchorDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	obligation, err := s.obligationRepo.FindObligationByID(ctx, userID, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}

	obligation.Name = req.Description
	obligation.Amount = utils.ParseBRL(req.Value)
	obligation.AnchorDate = anchor
	obligation.LastUpdatedAt = s.now()

	if err := s.obligationRepo.UpdateObligation(ctx, *obligation); err != nil {
		return nil, fmt.Errorf("failed to update obligation %s: %w", obligationID, err)
	}
	return obligation, nil
}

// MarkObligationPaid settles an obligation. One-off obligations get the paid
// flag and a paid-on stamp of the current day; repeated calls simply restamp
// (last write wins). Recurring obligations get the requested period (or the
// current one when nil) added to their settled set; marking a period twice
// is a no-op.
func (s *LedgerService) MarkObligationPaid(ctx context.Context, userID string, obligationID string, period *domain.Period) (*domain.Obligation, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, userID, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}

	if !obligation.IsRecurring {
		paidOn := s.today()
		obligation.Paid = true
		obligation.PaidOn = &paidOn
		obligation.LastUpdatedAt = s.now()
		if err := s.obligationRepo.MarkPaid(ctx, *obligation); err != nil {
			return nil, fmt.Errorf("failed to mark obligation %s paid: %w", obligationID, err)
		}
		return obligation, nil
	}

	p := domain.PeriodOf(s.today())
	if period != nil {
		p = *period
	}
	obligation.MarkPeriodPaid(p)
	if err := s.obligationRepo.MarkPeriodPaid(ctx, userID, obligationID, p); err != nil {
		return nil, fmt.Errorf("failed to mark period %s paid for obligation %s: %w", p, obligationID, err)
	}
	return obligation, nil
}

// DeleteObligation permanently removes the obligation and its entire
// payment history. There is no undo and no tombstone.
func (s *LedgerService) DeleteObligation(ctx context.Context, userID string, obligationID string) error {
	if err := s.obligationRepo.DeleteObligation(ctx, userID, obligationID); err != nil {
		return fmt.Errorf("failed to delete obligation %s: %w", obligationID, err)
	}
	return nil
}

// GetObligation retrieves a single obligation by ID.
func (s *LedgerService) GetObligation(ctx context.Context, userID string, obligationID string) (*domain.Obligation, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, userID, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	return obligation, nil
}

// ProjectForPeriod materializes the user's obligations for one period,
// computed fresh on every call.
func (s *LedgerService) ProjectForPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.ProjectionEntry, error) {
	obligations, err := s.obligationRepo.FindObligationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load obligations: %w", err)
	}
	return domain.BuildProjection(obligations, period, s.today()), nil
}

// ComputeSummary aggregates one period's projection against the user's
// income. Income is flat (salary + stipend), not period-adjusted.
func (s *LedgerService) ComputeSummary(ctx context.Context, userID string, period domain.Period) (domain.Summary, error) {
	entries, err := s.ProjectForPeriod(ctx, userID, period)
	if err != nil {
		return domain.Summary{}, err
	}
	income, err := s.loadIncome(ctx, userID)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(income, entries), nil
}

func (s *LedgerService) loadIncome(ctx context.Context, userID string) (domain.Income, error) {
	income, err := s.incomeRepo.FindIncomeByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Income{UserID: userID}, nil
		}
		return domain.Income{}, fmt.Errorf("failed to load income: %w", err)
	}
	return *income, nil
}

// parseAnchorDate parses a "YYYY-MM-DD" boundary date into a UTC-midnight
// calendar date.
func parseAnchorDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("anchor date is required: %w", apperrors.ErrValidation)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("anchor date %q is not in YYYY-MM-DD format: %w", s, apperrors.ErrValidation)
	}
	return t, nil
}
