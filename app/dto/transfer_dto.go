package dto

// TransferRequest carries a transfer from the authenticated account to a
// target account number.
type TransferRequest struct {
	TargetAccountNumber int    `json:"target_account_number" validate:"required"`
	Amount              string `json:"amount" validate:"required,max=32"`
	Description         string `json:"description" validate:"omitempty,max=140"`
}

// TransferResponse returns the outcome of a successful transfer.
type TransferResponse struct {
	SourceAccountNumber int    `json:"source_account_number"`
	TargetAccountNumber int    `json:"target_account_number"`
	Amount              string `json:"amount"`
	Description         string `json:"description,omitempty"`
	NewBalance          string `json:"new_balance"`
	CorrelationID       string `json:"correlation_id"`
}
