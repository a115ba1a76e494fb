// Package models contains the domain entities and business rules for the banking system
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Account is a customer's bank account. The balance, PIN digest, and
// transaction history are unexported so they can only change through the
// operations below: the balance never goes negative and the history is
// append-only.
//
// Accounts are not safe for concurrent use on their own; the business flows
// serialize all access behind a single state lock.
type Account struct {
	AccountNumber int
	Type          string
	Holder        string
	CustomerID    string
	OpenedAt      time.Time
	Active        bool

	balance   decimal.Decimal
	pinDigest string
	history   []TransactionRecord
}

// NewAccount creates an active account with a zero balance. The PIN digest
// must already be hashed; raw PINs are never stored.
func NewAccount(accountType, holder, customerID, pinDigest string, openedAt time.Time) *Account {
	return &Account{
		Type:       accountType,
		Holder:     holder,
		CustomerID: customerID,
		OpenedAt:   openedAt,
		Active:     true,
		balance:    decimal.Zero,
		pinDigest:  pinDigest,
	}
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// PINDigest returns the stored one-way digest of the account PIN. It is
// exposed only so the persistence layer can carry it verbatim across a
// save/load round trip.
func (a *Account) PINDigest() string {
	return a.pinDigest
}

// History returns a copy of the transaction history in append order.
func (a *Account) History() []TransactionRecord {
	out := make([]TransactionRecord, len(a.history))
	copy(out, a.history)
	return out
}

// Deposit credits the account and appends a deposit record. There is no
// upper bound on the amount.
func (a *Account) Deposit(amount decimal.Decimal, at time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.record(TransactionRecord{
		ID:        uuid.New(),
		Kind:      TransactionKindDeposit,
		Amount:    &amount,
		CreatedAt: at,
	})
	return nil
}

// Withdraw debits the account and appends a withdrawal record. A failing
// withdrawal leaves both balance and history unchanged.
func (a *Account) Withdraw(amount decimal.Decimal, at time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.record(TransactionRecord{
		ID:        uuid.New(),
		Kind:      TransactionKindWithdrawal,
		Amount:    &amount,
		CreatedAt: at,
	})
	return nil
}

// TransferOut debits the account as the source side of a transfer and appends
// a transfer-out record referencing the destination account number.
func (a *Account) TransferOut(amount decimal.Decimal, counterparty int, description string, correlationID uuid.UUID, at time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.record(TransactionRecord{
		ID:            uuid.New(),
		CorrelationID: correlationID,
		Kind:          TransactionKindTransferOut,
		Amount:        &amount,
		Counterparty:  &counterparty,
		Description:   description,
		CreatedAt:     at,
	})
	return nil
}

// TransferIn credits the account as the destination side of a transfer and
// appends a transfer-in record referencing the source account number.
func (a *Account) TransferIn(amount decimal.Decimal, counterparty int, description string, correlationID uuid.UUID, at time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	a.record(TransactionRecord{
		ID:            uuid.New(),
		CorrelationID: correlationID,
		Kind:          TransactionKindTransferIn,
		Amount:        &amount,
		Counterparty:  &counterparty,
		Description:   description,
		CreatedAt:     at,
	})
	return nil
}

// ValidatePIN reports whether candidate matches the stored PIN digest.
func (a *Account) ValidatePIN(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.pinDigest), []byte(candidate)) == nil
}

// ChangePIN replaces the stored digest after verifying the current PIN and
// appends a PIN-change record. The error does not reveal which check failed.
func (a *Account) ChangePIN(currentPIN, newPIN string, at time.Time) error {
	if !a.ValidatePIN(currentPIN) {
		return ErrPINChangeRejected
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return ErrPINChangeRejected
	}
	a.pinDigest = string(digest)
	a.record(TransactionRecord{
		ID:        uuid.New(),
		Kind:      TransactionKindPINChange,
		CreatedAt: at,
	})
	return nil
}

func (a *Account) record(rec TransactionRecord) {
	a.history = append(a.history, rec)
}

// AccountState is the serializable form of an Account. The persistence layer
// works with this explicit schema instead of the account's internal layout so
// the snapshot format stays stable as the entity evolves.
type AccountState struct {
	AccountNumber int                 `json:"account_number"`
	Type          string              `json:"account_type"`
	Holder        string              `json:"account_holder"`
	CustomerID    string              `json:"customer_id"`
	OpenedAt      time.Time           `json:"opened_at"`
	Active        bool                `json:"active"`
	Balance       decimal.Decimal     `json:"balance"`
	PINDigest     string              `json:"pin_digest"`
	History       []TransactionRecord `json:"history"`
}

// State exports the account for persistence, including the PIN digest
// verbatim and the full history in append order.
func (a *Account) State() AccountState {
	return AccountState{
		AccountNumber: a.AccountNumber,
		Type:          a.Type,
		Holder:        a.Holder,
		CustomerID:    a.CustomerID,
		OpenedAt:      a.OpenedAt,
		Active:        a.Active,
		Balance:       a.balance,
		PINDigest:     a.pinDigest,
		History:       a.History(),
	}
}

// AccountFromState rebuilds an account from its serialized form.
func AccountFromState(st AccountState) *Account {
	a := &Account{
		AccountNumber: st.AccountNumber,
		Type:          st.Type,
		Holder:        st.Holder,
		CustomerID:    st.CustomerID,
		OpenedAt:      st.OpenedAt,
		Active:        st.Active,
		balance:       st.Balance,
		pinDigest:     st.PINDigest,
	}
	a.history = make([]TransactionRecord, len(st.History))
	copy(a.history, st.History)
	return a
}
