package dto

// AccountDTO is the public view of an account. The PIN digest is never
// serialized.
type AccountDTO struct {
	AccountNumber int    `json:"account_number"`
	AccountType   string `json:"account_type"`
	AccountHolder string `json:"account_holder"`
	CustomerID    string `json:"customer_id"`
	Balance       string `json:"balance"`
	Active        bool   `json:"active"`
	OpenedAt      string `json:"opened_at"`
}

// TransactionDTO is one entry of an account's transaction history.
type TransactionDTO struct {
	ID            string `json:"id"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount,omitempty"`
	Counterparty  *int   `json:"counterparty,omitempty"`
	Description   string `json:"description,omitempty"`
	CreatedAt     string `json:"created_at"`
	Display       string `json:"display"`
}

// AmountRequest carries the amount for a deposit or withdrawal. Amounts
// travel as strings so they parse exactly, with no float rounding.
type AmountRequest struct {
	Amount string `json:"amount" validate:"required,max=32"`
}

// TransactionResponse returns the applied amount and the new balance.
type TransactionResponse struct {
	AccountNumber int    `json:"account_number"`
	Amount        string `json:"amount"`
	NewBalance    string `json:"new_balance"`
}

// ChangePINRequest carries a PIN change. The current PIN must validate.
type ChangePINRequest struct {
	CurrentPIN    string `json:"current_pin" validate:"required,len=4,numeric"`
	NewPIN        string `json:"new_pin" validate:"required,len=4,numeric"`
	ConfirmNewPIN string `json:"confirm_new_pin" validate:"required,eqfield=NewPIN"`
}

// CustomerContactDTO is the owning customer's contact info shown on the
// account details view.
type CustomerContactDTO struct {
	CustomerID  string `json:"customer_id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
}

// AccountDetailsResponse combines the account with its owner's contact info.
type AccountDetailsResponse struct {
	Account  AccountDTO         `json:"account"`
	Customer CustomerContactDTO `json:"customer"`
}

// HistoryResponse returns the full transaction history of an account.
type HistoryResponse struct {
	AccountNumber int              `json:"account_number"`
	Balance       string           `json:"balance"`
	Transactions  []TransactionDTO `json:"transactions"`
}
