package domain

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionEntry is an Obligation materialized for one requested period.
// It is derived on every read and never stored.
type ProjectionEntry struct {
	ObligationID  string          `json:"obligationID"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	IsRecurring   bool            `json:"isRecurring"`
	DueDate       time.Time       `json:"dueDate"` // due date within the requested period
	DaysRemaining int             `json:"daysRemaining"`
	Paid          bool            `json:"paid"`
	Overdue       bool            `json:"overdue"`
	PaidOn        *time.Time      `json:"paidOn,omitempty"`
	Category      Category        `json:"category"`
}

// Summary aggregates a period's projection against the user's income.
// TotalIncome is flat (salary + stipend), not period-adjusted.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalSettled     decimal.Decimal `json:"totalSettled"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	Balance          decimal.Decimal `json:"balance"`
}

// StartOfDay truncates t to midnight of its civil day, re-anchored in UTC so
// day arithmetic is exact regardless of the location's DST rules.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day distance from one civil day to another,
// negative when `to` is in the past. Day counts are rounded to the nearest
// whole day from midnight; with both endpoints normalized by StartOfDay the
// difference is an exact multiple of 24h and the rounding only guards
// against non-normalized input.
func DaysBetween(from, to time.Time) int {
	diff := StartOfDay(to).Sub(StartOfDay(from))
	return int(math.Round(diff.Hours() / 24))
}

// BuildProjection materializes the obligations visible in the requested
// period. `today` anchors the countdown and must already be in the ledger's
// reference timezone.
//
// Entries are ordered unpaid before paid and, within the unpaid block,
// ascending by days remaining so overdue bills surface first. Ties keep
// insertion order.
func BuildProjection(obligations []Obligation, period Period, today time.Time) []ProjectionEntry {
	entries := make([]ProjectionEntry, 0, len(obligations))
	for _, o := range obligations {
		if !o.VisibleIn(period) {
			continue
		}
		due := o.DueDateIn(period)
		days := DaysBetween(today, due)
		paid := o.PaidForPeriod(period)
		entries = append(entries, ProjectionEntry{
			ObligationID:  o.ObligationID,
			Name:          o.Name,
			Amount:        o.Amount,
			IsRecurring:   o.IsRecurring,
			DueDate:       due,
			DaysRemaining: days,
			Paid:          paid,
			Overdue:       days < 0 && !paid,
			PaidOn:        o.PaidOn,
			Category:      Categorize(o.Name),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Paid != entries[j].Paid {
			return !entries[i].Paid
		}
		if entries[i].Paid {
			return false
		}
		return entries[i].DaysRemaining < entries[j].DaysRemaining
	})
	return entries
}

// Summarize folds a projection into period totals. For every period,
// TotalSettled + TotalOutstanding equals the sum of all visible amounts.
func Summarize(income Income, entries []ProjectionEntry) Summary {
	settled := decimal.Zero
	outstanding := decimal.Zero
	for _, e := range entries {
		if e.Paid {
			settled = settled.Add(e.Amount)
		} else {
			outstanding = outstanding.Add(e.Amount)
		}
	}
	total := income.Total()
	return Summary{
		TotalIncome:      total,
		TotalSettled:     settled,
		TotalOutstanding: outstanding,
		Balance:          total.Sub(settled),
	}
}
