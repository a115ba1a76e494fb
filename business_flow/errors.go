// Package businessflow contains the core business logic and use cases for the banking workflows
package businessflow

import (
	"errors"
	"fmt"

	"github.com/bankforge/bankforge/models"
)

// Business flow error constants. Every business-rule failure is returned as
// a value the caller can inspect and retry on; nothing here is fatal.
var (
	// Ledger errors surfaced from the account entity
	ErrInvalidAmount     = models.ErrInvalidAmount
	ErrInsufficientFunds = models.ErrInsufficientFunds
	ErrPINChangeRejected = models.ErrPINChangeRejected

	// Transfer errors
	ErrSelfTransfer        = errors.New("cannot transfer to the same account")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInactiveDestination = errors.New("destination account is inactive")

	// Authentication errors. A wrong PIN and an unknown account number fail
	// identically so account numbers cannot be enumerated through login.
	ErrAuthenticationFailed = errors.New("invalid account number or PIN")

	// Recovery errors
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNoSearchCriteria = errors.New("at least one search field is required")

	// Persistence errors
	ErrPersistenceUnavailable = errors.New("snapshot storage unavailable")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsInvalidAmount(err error) bool {
	return errors.Is(err, ErrInvalidAmount)
}

func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

func IsPINChangeRejected(err error) bool {
	return errors.Is(err, ErrPINChangeRejected)
}

func IsSelfTransfer(err error) bool {
	return errors.Is(err, ErrSelfTransfer)
}

func IsAccountNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}

func IsInactiveDestination(err error) bool {
	return errors.Is(err, ErrInactiveDestination)
}

func IsAuthenticationFailed(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed)
}

func IsCustomerNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound)
}

func IsNoSearchCriteria(err error) bool {
	return errors.Is(err, ErrNoSearchCriteria)
}

func IsPersistenceUnavailable(err error) bool {
	return errors.Is(err, ErrPersistenceUnavailable)
}
