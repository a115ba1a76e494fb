package dto

// LoginRequest carries an account number and PIN pair.
type LoginRequest struct {
	AccountNumber int    `json:"account_number" validate:"required"`
	PIN           string `json:"pin" validate:"required,len=4,numeric"`
}

// SessionDTO is the session token issued on successful login.
type SessionDTO struct {
	SessionToken string `json:"session_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// LoginResponse returns the authenticated account and its session.
type LoginResponse struct {
	Account AccountDTO `json:"account"`
	Session SessionDTO `json:"session"`
}
