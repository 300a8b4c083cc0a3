package domain

// User represents an account holder. All ledger data is partitioned by
// UserID; no ledger operation ever spans two users.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AuditFields
}
