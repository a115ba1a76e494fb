// Package models contains the domain entities and business rules for the banking system
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of event recorded in an account history
type TransactionKind string

const (
	TransactionKindDeposit     TransactionKind = "deposit"
	TransactionKindWithdrawal  TransactionKind = "withdrawal"
	TransactionKindTransferOut TransactionKind = "transfer_out"
	TransactionKindTransferIn  TransactionKind = "transfer_in"
	TransactionKindPINChange   TransactionKind = "pin_change"
)

// TransactionRecord is an immutable entry in an account's transaction history.
// Records are appended in chronological order and never edited or reordered.
type TransactionRecord struct {
	ID            uuid.UUID        `json:"id"`
	CorrelationID uuid.UUID        `json:"correlation_id,omitzero"` // links the two sides of a transfer
	Kind          TransactionKind  `json:"kind"`
	Amount        *decimal.Decimal `json:"amount,omitempty"` // absent for PIN changes
	Counterparty  *int             `json:"counterparty,omitempty"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// String renders the record the way the account statement displays it.
func (r TransactionRecord) String() string {
	ts := r.CreatedAt.Format("2006-01-02 15:04:05")
	desc := ""
	if r.Description != "" {
		desc = " - " + r.Description
	}
	switch r.Kind {
	case TransactionKindDeposit:
		return fmt.Sprintf("Deposited R%s%s on %s", r.Amount.StringFixed(2), desc, ts)
	case TransactionKindWithdrawal:
		return fmt.Sprintf("Withdrew R%s%s on %s", r.Amount.StringFixed(2), desc, ts)
	case TransactionKindTransferOut:
		return fmt.Sprintf("Transferred R%s to Account %d%s on %s", r.Amount.StringFixed(2), *r.Counterparty, desc, ts)
	case TransactionKindTransferIn:
		return fmt.Sprintf("Received R%s from Account %d%s on %s", r.Amount.StringFixed(2), *r.Counterparty, desc, ts)
	case TransactionKindPINChange:
		return fmt.Sprintf("PIN changed on %s", ts)
	default:
		return fmt.Sprintf("%s on %s", r.Kind, ts)
	}
}
