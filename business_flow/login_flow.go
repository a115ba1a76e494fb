// Package businessflow contains the core business logic and use cases for the banking workflows
package businessflow

import (
	"context"

	"github.com/bankforge/bankforge/app/dto"
	"github.com/bankforge/bankforge/app/services"
)

// LoginFlow handles the account authentication business logic
type LoginFlow interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// LoginFlowImpl implements the login business flow
type LoginFlowImpl struct {
	state        *BankState
	tokenService services.TokenService
}

// NewLoginFlow creates a new login flow instance
func NewLoginFlow(state *BankState, tokenService services.TokenService) LoginFlow {
	return &LoginFlowImpl{
		state:        state,
		tokenService: tokenService,
	}
}

// Login authenticates an account number and PIN pair and issues a session
// token. An unknown account number and a wrong PIN produce the same error so
// valid account numbers cannot be probed.
func (l *LoginFlowImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	l.state.Lock()
	defer l.state.Unlock()

	account, ok := l.state.Directory().AccountByNumber(req.AccountNumber)
	if !ok || !account.ValidatePIN(req.PIN) {
		return nil, NewBusinessError("LOGIN_FAILED", "Authentication failed", ErrAuthenticationFailed)
	}

	token, expiresIn, err := l.tokenService.GenerateSessionToken(account.AccountNumber, account.CustomerID)
	if err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to issue session token", err)
	}

	return &dto.LoginResponse{
		Account: ToAccountDTO(account),
		Session: dto.SessionDTO{
			SessionToken: token,
			TokenType:    "Bearer",
			ExpiresIn:    expiresIn,
		},
	}, nil
}
