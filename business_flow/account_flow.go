// Package businessflow contains the core business logic and use cases for the banking workflows
package businessflow

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bankforge/bankforge/app/dto"
	"github.com/bankforge/bankforge/models"
)

// AccountFlow handles the single-account operations for an authenticated
// account: deposits, withdrawals, PIN changes, and read-only views.
type AccountFlow interface {
	Deposit(ctx context.Context, accountNumber int, req *dto.AmountRequest) (*dto.TransactionResponse, error)
	Withdraw(ctx context.Context, accountNumber int, req *dto.AmountRequest) (*dto.TransactionResponse, error)
	ChangePIN(ctx context.Context, accountNumber int, req *dto.ChangePINRequest) error
	Details(ctx context.Context, accountNumber int) (*dto.AccountDetailsResponse, error)
	History(ctx context.Context, accountNumber int) (*dto.HistoryResponse, error)
}

// AccountFlowImpl implements the account business flow
type AccountFlowImpl struct {
	state *BankState
	clock Clock
}

// NewAccountFlow creates a new account flow instance
func NewAccountFlow(state *BankState, clock Clock) AccountFlow {
	return &AccountFlowImpl{
		state: state,
		clock: clock,
	}
}

// Deposit credits the account and saves a snapshot.
func (a *AccountFlowImpl) Deposit(ctx context.Context, accountNumber int, req *dto.AmountRequest) (*dto.TransactionResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	a.state.Lock()
	defer a.state.Unlock()

	account, err := a.lookup(accountNumber)
	if err != nil {
		return nil, err
	}
	if err := account.Deposit(amount, a.clock.Now()); err != nil {
		return nil, NewBusinessError("DEPOSIT_FAILED", "Deposit rejected", err)
	}
	a.state.persistLogged("deposit")

	return &dto.TransactionResponse{
		AccountNumber: account.AccountNumber,
		Amount:        amount.StringFixed(2),
		NewBalance:    account.Balance().StringFixed(2),
	}, nil
}

// Withdraw debits the account and saves a snapshot. A rejected withdrawal
// changes nothing and writes nothing.
func (a *AccountFlowImpl) Withdraw(ctx context.Context, accountNumber int, req *dto.AmountRequest) (*dto.TransactionResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	a.state.Lock()
	defer a.state.Unlock()

	account, err := a.lookup(accountNumber)
	if err != nil {
		return nil, err
	}
	if err := account.Withdraw(amount, a.clock.Now()); err != nil {
		return nil, NewBusinessError("WITHDRAWAL_FAILED", "Withdrawal rejected", err)
	}
	a.state.persistLogged("withdrawal")

	return &dto.TransactionResponse{
		AccountNumber: account.AccountNumber,
		Amount:        amount.StringFixed(2),
		NewBalance:    account.Balance().StringFixed(2),
	}, nil
}

// ChangePIN replaces the account PIN after verifying the current one.
func (a *AccountFlowImpl) ChangePIN(ctx context.Context, accountNumber int, req *dto.ChangePINRequest) error {
	a.state.Lock()
	defer a.state.Unlock()

	account, err := a.lookup(accountNumber)
	if err != nil {
		return err
	}
	if err := account.ChangePIN(req.CurrentPIN, req.NewPIN, a.clock.Now()); err != nil {
		return NewBusinessError("PIN_CHANGE_FAILED", "PIN change rejected", err)
	}
	a.state.persistLogged("PIN change")
	return nil
}

// Details returns the account together with its owner's contact info.
func (a *AccountFlowImpl) Details(ctx context.Context, accountNumber int) (*dto.AccountDetailsResponse, error) {
	a.state.Lock()
	defer a.state.Unlock()

	account, err := a.lookup(accountNumber)
	if err != nil {
		return nil, err
	}
	customer, ok := a.state.Directory().CustomerByID(account.CustomerID)
	if !ok {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "Account owner not found", ErrCustomerNotFound)
	}

	return &dto.AccountDetailsResponse{
		Account: ToAccountDTO(account),
		Customer: dto.CustomerContactDTO{
			CustomerID:  customer.CustomerID,
			FullName:    customer.FullName(),
			PhoneNumber: customer.PhoneNumber,
			Email:       customer.Email,
		},
	}, nil
}

// History returns the full transaction history in the order it was recorded.
func (a *AccountFlowImpl) History(ctx context.Context, accountNumber int) (*dto.HistoryResponse, error) {
	a.state.Lock()
	defer a.state.Unlock()

	account, err := a.lookup(accountNumber)
	if err != nil {
		return nil, err
	}

	return &dto.HistoryResponse{
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance().StringFixed(2),
		Transactions:  ToTransactionDTOs(account.History()),
	}, nil
}

func (a *AccountFlowImpl) lookup(accountNumber int) (*models.Account, error) {
	account, ok := a.state.Directory().AccountByNumber(accountNumber)
	if !ok {
		return nil, NewBusinessError("ACCOUNT_NOT_FOUND", "Account not found", ErrAccountNotFound)
	}
	return account, nil
}

// parseAmount parses a decimal amount string. Unparseable input is treated
// the same as a non-positive amount.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, NewBusinessError("INVALID_AMOUNT", "Invalid amount", ErrInvalidAmount)
	}
	return amount, nil
}
