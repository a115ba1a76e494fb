package dto

// RecoverRequest carries the search criteria for the account recovery flow.
// At least one field must be provided; all provided fields must match.
type RecoverRequest struct {
	Name        string `json:"name" validate:"omitempty,max=120"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
}

// RecoveredAccountDTO is one recovery match: enough to log in again, without
// exposing the PIN or balance.
type RecoveredAccountDTO struct {
	FullName      string `json:"full_name"`
	CustomerID    string `json:"customer_id"`
	AccountNumber int    `json:"account_number"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email,omitempty"`
}

// RecoverResponse returns all matching customers with their accounts.
type RecoverResponse struct {
	Matches []RecoveredAccountDTO `json:"matches"`
}
