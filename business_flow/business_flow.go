// Package businessflow contains the business logic for the application.
package businessflow

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bankforge/bankforge/app/dto"
	"github.com/bankforge/bankforge/models"
	"github.com/bankforge/bankforge/repository"
	"github.com/bankforge/bankforge/utils"
)

const RequestIDKey = "X-Request-ID"

// Clock abstracts the time source so flows can be tested with fixed timestamps
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return utils.UTCNow()
}

// SystemClock returns a Clock backed by the wall clock in UTC
func SystemClock() Clock {
	return systemClock{}
}

// ToAccountDTO converts an account entity to its API representation
func ToAccountDTO(account *models.Account) dto.AccountDTO {
	return dto.AccountDTO{
		AccountNumber: account.AccountNumber,
		AccountType:   account.Type,
		AccountHolder: account.Holder,
		CustomerID:    account.CustomerID,
		Balance:       account.Balance().StringFixed(2),
		Active:        account.Active,
		OpenedAt:      account.OpenedAt.Format(time.RFC3339),
	}
}

// ToTransactionDTO converts a transaction record to its API representation
func ToTransactionDTO(record models.TransactionRecord) dto.TransactionDTO {
	t := dto.TransactionDTO{
		ID:          record.ID.String(),
		Kind:        string(record.Kind),
		Description: record.Description,
		Display:     record.String(),
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
	}
	if record.Amount != nil {
		t.Amount = record.Amount.StringFixed(2)
	}
	if record.CorrelationID != uuid.Nil {
		t.CorrelationID = record.CorrelationID.String()
	}
	if record.Counterparty != nil {
		t.Counterparty = record.Counterparty
	}
	return t
}

// ToTransactionDTOs converts a history slice, preserving ledger order
func ToTransactionDTOs(records []models.TransactionRecord) []dto.TransactionDTO {
	out := make([]dto.TransactionDTO, 0, len(records))
	for _, r := range records {
		out = append(out, ToTransactionDTO(r))
	}
	return out
}

// BankState is the shared mutable state behind every flow. All flows serialize
// whole operations on its mutex so cross-account invariants hold; the
// directory's own lock only protects its internal maps.
type BankState struct {
	mu        sync.Mutex
	directory *repository.Directory
	store     *repository.SnapshotStore
}

// NewBankState creates the shared state container
func NewBankState(directory *repository.Directory, store *repository.SnapshotStore) *BankState {
	return &BankState{
		directory: directory,
		store:     store,
	}
}

// Directory exposes the customer and account registry
func (s *BankState) Directory() *repository.Directory {
	return s.directory
}

// Lock acquires the operation lock. Every flow wraps its critical section in
// Lock/Unlock so balance checks and mutations are atomic as a pair.
func (s *BankState) Lock() {
	s.mu.Lock()
}

// Unlock releases the operation lock
func (s *BankState) Unlock() {
	s.mu.Unlock()
}

// Persist writes the current snapshot to disk. Callers must hold the
// operation lock so the snapshot observes a consistent state.
func (s *BankState) Persist() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveAll(s.directory.Customers(), s.directory.Accounts()); err != nil {
		return NewBusinessError("SNAPSHOT_SAVE_FAILED", "Failed to save snapshot", ErrPersistenceUnavailable)
	}
	return nil
}

// persistLogged saves the snapshot after a mutation has already applied. The
// ledger state is authoritative, so a failed save is logged rather than
// failing an operation that succeeded.
func (s *BankState) persistLogged(operation string) {
	if err := s.Persist(); err != nil {
		log.Printf("snapshot save failed after %s: %v", operation, err)
	}
}
