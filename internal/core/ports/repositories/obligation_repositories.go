package repositories

import (
	"context"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
)

// ObligationReader defines read operations for obligation data.
type ObligationReader interface {
	// FindObligationByID retrieves one obligation, including its settled
	// periods. Returns apperrors.ErrNotFound when absent or owned by
	// another user.
	FindObligationByID(ctx context.Context, userID string, obligationID string) (*domain.Obligation, error)

	// FindObligationsByUser retrieves every obligation in the user's ledger.
	FindObligationsByUser(ctx context.Context, userID string) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligation data.
type ObligationWriter interface {
	// SaveObligation persists a new obligation.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// UpdateObligation overwrites name, amount and anchor date of an
	// existing obligation. Recurrence flag and payment history are never
	// touched by this call.
	UpdateObligation(ctx context.Context, obligation domain.Obligation) error

	// MarkPaid records payment of a one-off obligation (paid flag plus
	// paid-on stamp; last write wins on repeat calls).
	MarkPaid(ctx context.Context, obligation domain.Obligation) error

	// MarkPeriodPaid adds a settled period to a recurring obligation.
	// Idempotent: marking the same period twice leaves one row.
	MarkPeriodPaid(ctx context.Context, userID string, obligationID string, period domain.Period) error
}

// ObligationLifecycleManager defines destroy operations for obligations.
type ObligationLifecycleManager interface {
	// DeleteObligation permanently removes the obligation and its payment
	// history. There is no soft delete and no undo.
	DeleteObligation(ctx context.Context, userID string, obligationID string) error
}

// ObligationRepositoryFacade combines all obligation repository interfaces.
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
	ObligationLifecycleManager
}
