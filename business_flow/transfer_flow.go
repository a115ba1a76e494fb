// Package businessflow contains the core business logic and use cases for the banking workflows
package businessflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bankforge/bankforge/app/dto"
)

// TransferFlow handles the account-to-account transfer business logic
type TransferFlow interface {
	Transfer(ctx context.Context, sourceAccountNumber int, req *dto.TransferRequest) (*dto.TransferResponse, error)
}

// TransferFlowImpl implements the transfer business flow
type TransferFlowImpl struct {
	state *BankState
	clock Clock
}

// NewTransferFlow creates a new transfer flow instance
func NewTransferFlow(state *BankState, clock Clock) TransferFlow {
	return &TransferFlowImpl{
		state: state,
		clock: clock,
	}
}

// Transfer moves funds from the authenticated account to the target account.
// Checks run in a fixed order: amount, funds, self-transfer, target
// existence, target active. Both ledger entries share one correlation ID and
// one timestamp, and the snapshot is saved only after both sides applied.
func (t *TransferFlowImpl) Transfer(ctx context.Context, sourceAccountNumber int, req *dto.TransferRequest) (*dto.TransferResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	t.state.Lock()
	defer t.state.Unlock()

	source, ok := t.state.Directory().AccountByNumber(sourceAccountNumber)
	if !ok {
		return nil, NewBusinessError("ACCOUNT_NOT_FOUND", "Account not found", ErrAccountNotFound)
	}

	if !amount.IsPositive() {
		return nil, NewBusinessError("INVALID_AMOUNT", "Invalid transfer amount", ErrInvalidAmount)
	}
	if amount.GreaterThan(source.Balance()) {
		return nil, NewBusinessError("INSUFFICIENT_FUNDS",
			fmt.Sprintf("Insufficient funds, current balance is R%s", source.Balance().StringFixed(2)),
			ErrInsufficientFunds)
	}
	if req.TargetAccountNumber == source.AccountNumber {
		return nil, NewBusinessError("SELF_TRANSFER", "Cannot transfer to the same account", ErrSelfTransfer)
	}
	target, ok := t.state.Directory().AccountByNumber(req.TargetAccountNumber)
	if !ok {
		return nil, NewBusinessError("TARGET_NOT_FOUND", "Target account not found", ErrAccountNotFound)
	}
	if !target.Active {
		return nil, NewBusinessError("TARGET_INACTIVE", "Target account is inactive", ErrInactiveDestination)
	}

	correlationID := uuid.New()
	now := t.clock.Now()
	if err := source.TransferOut(amount, target.AccountNumber, req.Description, correlationID, now); err != nil {
		return nil, NewBusinessError("TRANSFER_FAILED", "Transfer rejected", err)
	}
	if err := target.TransferIn(amount, source.AccountNumber, req.Description, correlationID, now); err != nil {
		return nil, NewBusinessError("TRANSFER_FAILED", "Transfer rejected", err)
	}
	t.state.persistLogged("transfer")

	return &dto.TransferResponse{
		SourceAccountNumber: source.AccountNumber,
		TargetAccountNumber: target.AccountNumber,
		Amount:              amount.StringFixed(2),
		Description:         req.Description,
		NewBalance:          source.Balance().StringFixed(2),
		CorrelationID:       correlationID.String(),
	}, nil
}
