package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is one entry in a user's ledger: a bill that is either one-off
// (anchored to a single calendar date) or recurring (the anchor date's
// day-of-month acts as the due-day template for every month).
//
// The identity (ObligationID) never changes across edits, and the recurrence
// flag is immutable after creation. Payment state is tracked differently per
// kind: one-off obligations carry a terminal Paid flag, recurring ones carry
// a grow-only set of settled "YYYY-MM" periods.
type Obligation struct {
	ObligationID string          `json:"obligationID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	AnchorDate   time.Time       `json:"anchorDate"` // calendar date, midnight UTC
	IsRecurring  bool            `json:"isRecurring"`
	Paid         bool            `json:"paid"`             // one-off only
	PaidOn       *time.Time      `json:"paidOn,omitempty"` // one-off only
	PaidPeriods  []string        `json:"paidPeriods"`      // recurring only, set of "YYYY-MM"
	AuditFields
}

// AnchorPeriod returns the year-month the obligation was anchored in.
func (o Obligation) AnchorPeriod() Period {
	return PeriodOf(o.AnchorDate)
}

// VisibleIn reports whether the obligation belongs in the projection for the
// given period: recurring obligations appear from their anchor period
// onwards, one-off obligations only in their anchor period.
func (o Obligation) VisibleIn(p Period) bool {
	if o.IsRecurring {
		return !o.AnchorPeriod().After(p)
	}
	return o.AnchorPeriod() == p
}

// DueDateIn materializes the due date for the given period: the period's
// year-month combined with the anchor date's day-of-month, clamped to the
// last day of short months (an obligation anchored on the 31st falls due on
// Feb 28/29).
func (o Obligation) DueDateIn(p Period) time.Time {
	day := o.AnchorDate.Day()
	if last := p.LastDay(); day > last {
		day = last
	}
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}

// PaidForPeriod reports whether the obligation is settled for the given
// period. One-off obligations have a single global flag; recurring ones are
// settled per period, and absence from PaidPeriods means unpaid.
func (o Obligation) PaidForPeriod(p Period) bool {
	if !o.IsRecurring {
		return o.Paid
	}
	return slices.Contains(o.PaidPeriods, p.String())
}

// MarkPeriodPaid adds the period to the settled set. Idempotent: marking a
// period twice leaves a single entry.
func (o *Obligation) MarkPeriodPaid(p Period) {
	key := p.String()
	if slices.Contains(o.PaidPeriods, key) {
		return
	}
	o.PaidPeriods = append(o.PaidPeriods, key)
}
