package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/nortis-app/nortis-backend/internal/apperrors"
)

// Period is a calendar year-month, the unit of projection and of payment
// tracking for recurring obligations. Its canonical string form is "YYYY-MM".
type Period struct {
	Year  int
	Month time.Month
}

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ParsePeriod parses a "YYYY-MM" string into a Period.
// Returns ErrValidation for anything else, including month 00 or 13.
func ParsePeriod(s string) (Period, error) {
	if !periodPattern.MatchString(s) {
		return Period{}, fmt.Errorf("period %q is not in YYYY-MM format: %w", s, apperrors.ErrValidation)
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("period %q has no such month: %w", s, apperrors.ErrValidation)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// PeriodOf returns the period containing the given date.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// String renders the canonical "YYYY-MM" form.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Compare returns -1, 0 or 1 as p sorts before, equal to or after other.
func (p Period) Compare(other Period) int {
	a := p.Year*12 + int(p.Month)
	b := other.Year*12 + int(other.Month)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// After reports whether p is strictly later than other.
func (p Period) After(other Period) bool {
	return p.Compare(other) > 0
}

// LastDay returns the number of days in the period's month.
func (p Period) LastDay() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
