package services

import (
	"context"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
	"github.com/nortis-app/nortis-backend/internal/dto"
)

// ObligationReaderSvc defines the read side of the obligation ledger:
// projecting the stored obligations onto a calendar period and aggregating
// the result. Projections are computed fresh on every call, never cached.
type ObligationReaderSvc interface {
	// GetObligation retrieves a single obligation by ID.
	GetObligation(ctx context.Context, userID string, obligationID string) (*domain.Obligation, error)

	// ProjectForPeriod materializes the obligations visible in the given
	// period, sorted unpaid-first then most-urgent-first.
	ProjectForPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.ProjectionEntry, error)

	// ComputeSummary aggregates the period's projection against the user's
	// income.
	ComputeSummary(ctx context.Context, userID string, period domain.Period) (domain.Summary, error)
}

// ObligationWriterSvc defines mutations on the obligation ledger. All writes
// are durable before the call returns.
type ObligationWriterSvc interface {
	// AddObligation creates a new one-off or recurring obligation.
	AddObligation(ctx context.Context, userID string, req dto.CreateObligationRequest) (*domain.Obligation, error)

	// EditObligation overwrites name, amount and anchor date. The recurrence
	// flag and payment history are untouched.
	EditObligation(ctx context.Context, userID string, obligationID string, req dto.UpdateObligationRequest) (*domain.Obligation, error)

	// MarkObligationPaid settles a one-off obligation, or settles a
	// recurring obligation for the given period (the current period when
	// nil). Idempotent for recurring obligations.
	MarkObligationPaid(ctx context.Context, userID string, obligationID string, period *domain.Period) (*domain.Obligation, error)
}

// ObligationLifecycleSvc defines destroy operations for obligations.
type ObligationLifecycleSvc interface {
	// DeleteObligation permanently removes the obligation and its payment
	// history.
	DeleteObligation(ctx context.Context, userID string, obligationID string) error
}

// LedgerSvcFacade combines all obligation-ledger service interfaces.
type LedgerSvcFacade interface {
	ObligationReaderSvc
	ObligationWriterSvc
	ObligationLifecycleSvc
}
