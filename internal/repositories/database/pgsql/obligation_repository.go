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

// PgxObligationRepository persists obligations and their per-period payment
// history. Settled periods live in the obligation_payments table, keyed by
// (obligation_id, period) so marking a period paid twice cannot produce a
// duplicate row.
type PgxObligationRepository struct {
	BaseRepository
}

func newPgxObligationRepository(db *pgxpool.Pool) portsrepo.ObligationRepositoryFacade {
	return &PgxObligationRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.ObligationRepositoryFacade = (*PgxObligationRepository)(nil)

const obligationColumns = `
	o.obligation_id, o.user_id, o.name, o.amount, o.anchor_date, o.is_recurring,
	o.paid, o.paid_on, o.created_at, o.last_updated_at,
	COALESCE(array_agg(p.period ORDER BY p.period) FILTER (WHERE p.period IS NOT NULL), '{}')
`

func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	query := `
        INSERT INTO obligations (obligation_id, user_id, name, amount, anchor_date, is_recurring, paid, paid_on, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		obligation.ObligationID,
		obligation.UserID,
		obligation.Name,
		obligation.Amount,
		obligation.AnchorDate,
		obligation.IsRecurring,
		obligation.Paid,
		obligation.PaidOn,
		obligation.CreatedAt,
		obligation.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save obligation: %w", err)
	}
	return nil
}

func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, userID string, obligationID string) (*domain.Obligation, error) {
	query := `
        SELECT ` + obligationColumns + `
        FROM obligations o
        LEFT JOIN obligation_payments p ON p.obligation_id = o.obligation_id
        WHERE o.obligation_id = $1 AND o.user_id = $2
        GROUP BY o.obligation_id;
    `
	obligation, err := scanObligation(r.Pool.QueryRow(ctx, query, obligationID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	return obligation, nil
}

func (r *PgxObligationRepository) FindObligationsByUser(ctx context.Context, userID string) ([]domain.Obligation, error) {
	query := `
        SELECT ` + obligationColumns + `
        FROM obligations o
        LEFT JOIN obligation_payments p ON p.obligation_id = o.obligation_id
        WHERE o.user_id = $1
        GROUP BY o.obligation_id
        ORDER BY o.created_at;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query obligations: %w", err)
	}
	defer rows.Close()

	obligations := []domain.Obligation{}
	for rows.Next() {
		obligation, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation row: %w", err)
		}
		obligations = append(obligations, *obligation)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating obligation rows: %w", rows.Err())
	}
	return obligations, nil
}

func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	query := `
        UPDATE obligations
        SET name = $1, amount = $2, anchor_date = $3, last_updated_at = $4
        WHERE obligation_id = $5 AND user_id = $6;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		obligation.Name,
		obligation.Amount,
		obligation.AnchorDate,
		obligation.LastUpdatedAt,
		obligation.ObligationID,
		obligation.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update obligation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxObligationRepository) MarkPaid(ctx context.Context, obligation domain.Obligation) error {
	query := `
        UPDATE obligations
        SET paid = TRUE, paid_on = $1, last_updated_at = $2
        WHERE obligation_id = $3 AND user_id = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		obligation.PaidOn,
		obligation.LastUpdatedAt,
		obligation.ObligationID,
		obligation.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark obligation paid: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxObligationRepository) MarkPeriodPaid(ctx context.Context, userID string, obligationID string, period domain.Period) error {
	// ON CONFLICT DO NOTHING makes the call idempotent: the settled set only
	// ever grows and never holds a period twice.
	query := `
        INSERT INTO obligation_payments (obligation_id, period, paid_at)
        SELECT o.obligation_id, $1, now()
        FROM obligations o
        WHERE o.obligation_id = $2 AND o.user_id = $3
        ON CONFLICT (obligation_id, period) DO NOTHING;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, period.String(), obligationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark period paid: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the obligation does not exist or the period was already
		// settled. Distinguish the two so absence still surfaces as not
		// found.
		var exists bool
		if err := r.Pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM obligations WHERE obligation_id = $1 AND user_id = $2);`,
			obligationID, userID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check obligation existence: %w", err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
	}
	return nil
}

func (r *PgxObligationRepository) DeleteObligation(ctx context.Context, userID string, obligationID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM obligation_payments WHERE obligation_id = $1;`, obligationID,
	); err != nil {
		return fmt.Errorf("failed to delete obligation payments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx,
		`DELETE FROM obligations WHERE obligation_id = $1 AND user_id = $2;`, obligationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete obligation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// scanObligation reads one obligation row including its aggregated settled
// periods.
func scanObligation(row pgx.Row) (*domain.Obligation, error) {
	var o domain.Obligation
	err := row.Scan(
		&o.ObligationID,
		&o.UserID,
		&o.Name,
		&o.Amount,
		&o.AnchorDate,
		&o.IsRecurring,
		&o.Paid,
		&o.PaidOn,
		&o.CreatedAt,
		&o.LastUpdatedAt,
		&o.PaidPeriods,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
