package dto

import (
	"github.com/nortis-app/nortis-backend/internal/core/domain"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// UpdateIncomeRequest carries the two income components as localized
// currency strings. Malformed values coerce to zero.
type UpdateIncomeRequest struct {
	Salary  string `json:"salary"`
	Stipend string `json:"stipend"`
}

// IncomeResponse defines the income data returned to the caller, formatted
// for display.
type IncomeResponse struct {
	Salary  string `json:"salary"`
	Stipend string `json:"stipend"`
	Total   string `json:"total"`
}

// ToIncomeResponse converts a domain.Income to its DTO.
func ToIncomeResponse(i domain.Income) IncomeResponse {
	return IncomeResponse{
		Salary:  utils.FormatBRL(i.Salary),
		Stipend: utils.FormatBRL(i.Stipend),
		Total:   utils.FormatBRL(i.Total()),
	}
}
