package dto

import (
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// ProjectionEntryResponse is one obligation materialized for the requested
// period, ready for display.
type ProjectionEntryResponse struct {
	ObligationID  string  `json:"obligationID"`
	Name          string  `json:"name"`
	Amount        string  `json:"amount"`
	IsRecurring   bool    `json:"isRecurring"`
	DueDate       string  `json:"dueDate"`
	DaysRemaining int     `json:"daysRemaining"`
	Paid          bool    `json:"paid"`
	Overdue       bool    `json:"overdue"`
	PaidOn        *string `json:"paidOn,omitempty"`
	Category      string  `json:"category"`
	Icon          string  `json:"icon"`
}

// SummaryResponse aggregates the period, formatted for display.
type SummaryResponse struct {
	TotalIncome      string `json:"totalIncome"`
	TotalSettled     string `json:"totalSettled"`
	TotalOutstanding string `json:"totalOutstanding"`
	Balance          string `json:"balance"`
}

// FinancesResponse is the full view for one period: income, projected
// obligations and summary.
type FinancesResponse struct {
	Period      string                    `json:"period"`
	Income      IncomeResponse            `json:"income"`
	Obligations []ProjectionEntryResponse `json:"obligations"`
	Summary     SummaryResponse           `json:"summary"`
}

// ListFinancesParams defines query parameters for the history endpoint.
type ListFinancesParams struct {
	Period string `form:"period" binding:"required,period"`
}

// ToProjectionEntryResponse converts a domain.ProjectionEntry to its DTO.
func ToProjectionEntryResponse(e domain.ProjectionEntry) ProjectionEntryResponse {
	resp := ProjectionEntryResponse{
		ObligationID:  e.ObligationID,
		Name:          e.Name,
		Amount:        utils.FormatBRL(e.Amount),
		IsRecurring:   e.IsRecurring,
		DueDate:       e.DueDate.Format("2006-01-02"),
		DaysRemaining: e.DaysRemaining,
		Paid:          e.Paid,
		Overdue:       e.Overdue,
		Category:      e.Category.Name,
		Icon:          e.Category.Icon,
	}
	if e.PaidOn != nil {
		s := e.PaidOn.Format("2006-01-02")
		resp.PaidOn = &s
	}
	return resp
}

// ToSummaryResponse converts a domain.Summary to its DTO.
func ToSummaryResponse(s domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:      utils.FormatBRL(s.TotalIncome),
		TotalSettled:     utils.FormatBRL(s.TotalSettled),
		TotalOutstanding: utils.FormatBRL(s.TotalOutstanding),
		Balance:          utils.FormatBRL(s.Balance),
	}
}

// ToFinancesResponse assembles the full period view.
func ToFinancesResponse(period domain.Period, income domain.Income, entries []domain.ProjectionEntry, summary domain.Summary) FinancesResponse {
	entryResponses := make([]ProjectionEntryResponse, len(entries))
	for i, e := range entries {
		entryResponses[i] = ToProjectionEntryResponse(e)
	}
	return FinancesResponse{
		Period:      period.String(),
		Income:      ToIncomeResponse(income),
		Obligations: entryResponses,
		Summary:     ToSummaryResponse(summary),
	}
}
