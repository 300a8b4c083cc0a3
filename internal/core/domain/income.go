package domain

import "github.com/shopspring/decimal"

// Income is the single per-user income record: a fixed salary plus a meal/
// transport stipend, independently editable. Amounts are exact decimals.
type Income struct {
	UserID  string          `json:"userID"`
	Salary  decimal.Decimal `json:"salary"`
	Stipend decimal.Decimal `json:"stipend"`
	AuditFields
}

// Total returns salary + stipend.
func (i Income) Total() decimal.Decimal {
	return i.Salary.Add(i.Stipend)
}
