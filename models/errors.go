// Package models contains the domain entities and business rules for the banking system
package models

import "errors"

// Core ledger errors. Flows wrap these into business errors; handlers map
// them to HTTP statuses. They are never thrown as panics.
var (
	// ErrInvalidAmount indicates a non-positive monetary amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates a debit larger than the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPINChangeRejected indicates a failed PIN change. It deliberately does
	// not reveal whether the current PIN was wrong or the new PIN was unusable.
	ErrPINChangeRejected = errors.New("PIN change rejected")
)
