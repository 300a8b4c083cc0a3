package dto

import (
	"time"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// CreateObligationRequest defines the data needed to add an obligation.
// Value is a localized currency string ("R$ 1.234,56"); malformed values
// coerce to zero rather than erroring. DueDate is a plain "YYYY-MM-DD"
// calendar date: the anchor date of the obligation.
type CreateObligationRequest struct {
	Description string `json:"description" binding:"required"`
	Value       string `json:"value"`
	DueDate     string `json:"dueDate" binding:"required"`
	IsRecurring bool   `json:"isRecurring"`
}

// UpdateObligationRequest defines the data allowed when editing an
// obligation. The recurrence flag is immutable and therefore absent.
type UpdateObligationRequest struct {
	Description string `json:"description" binding:"required"`
	Value       string `json:"value"`
	DueDate     string `json:"dueDate" binding:"required"`
}

// PayObligationRequest optionally names the period being settled for a
// recurring obligation. Omitted means the current period.
type PayObligationRequest struct {
	Period *string `json:"period" binding:"omitempty,period"`
}

// ObligationResponse defines the data returned for a stored obligation.
type ObligationResponse struct {
	ObligationID string    `json:"obligationID"`
	Name         string    `json:"name"`
	Amount       string    `json:"amount"` // formatted "R$ 1.234,56"
	AnchorDate   string    `json:"anchorDate"`
	IsRecurring  bool      `json:"isRecurring"`
	Paid         bool      `json:"paid"`
	PaidOn       *string   `json:"paidOn,omitempty"`
	PaidPeriods  []string  `json:"paidPeriods,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToObligationResponse converts a domain.Obligation to its DTO.
func ToObligationResponse(o *domain.Obligation) ObligationResponse {
	resp := ObligationResponse{
		ObligationID: o.ObligationID,
		Name:         o.Name,
		Amount:       utils.FormatBRL(o.Amount),
		AnchorDate:   o.AnchorDate.Format("2006-01-02"),
		IsRecurring:  o.IsRecurring,
		Paid:         o.Paid,
		PaidPeriods:  o.PaidPeriods,
		CreatedAt:    o.CreatedAt,
	}
	if o.PaidOn != nil {
		s := o.PaidOn.Format("2006-01-02")
		resp.PaidOn = &s
	}
	return resp
}
