// Package repository provides the in-memory directory of customers and
// accounts and the snapshot persistence gateway backing it.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bankforge/bankforge/models"
	"github.com/bankforge/bankforge/utils"
)

const (
	snapshotVersion = 1

	customersFile = "customers.json"
	accountsFile  = "accounts.json"
)

// ErrSnapshotCorrupt indicates an unreadable or version-incompatible
// snapshot file. Loading degrades to empty collections; it never fails
// startup.
var ErrSnapshotCorrupt = errors.New("snapshot file is corrupt")

type snapshotMeta struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
}

type customersSnapshot struct {
	Meta      snapshotMeta      `json:"_meta"`
	Customers []models.Customer `json:"customers"`
}

type accountsSnapshot struct {
	Meta     snapshotMeta          `json:"_meta"`
	Accounts []models.AccountState `json:"accounts"`
}

// SnapshotStore persists the full directory contents as two versioned JSON
// artifacts. Writes go to a temporary file first and are atomically renamed
// into place so a crash mid-write never corrupts the previous snapshot.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a store rooted at dir, creating it if needed.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &SnapshotStore{dir: dir}, nil
}

// SaveAll writes both collections to disk. Every field round-trips exactly,
// including PIN digests and full transaction histories.
func (s *SnapshotStore) SaveAll(customers []*models.Customer, accounts []*models.Account) error {
	meta := snapshotMeta{Version: snapshotVersion, SavedAt: utils.UTCNow()}

	cs := customersSnapshot{Meta: meta, Customers: make([]models.Customer, 0, len(customers))}
	for _, c := range customers {
		cs.Customers = append(cs.Customers, *c)
	}
	as := accountsSnapshot{Meta: meta, Accounts: make([]models.AccountState, 0, len(accounts))}
	for _, a := range accounts {
		as.Accounts = append(as.Accounts, a.State())
	}

	if err := s.writeFile(customersFile, cs); err != nil {
		return fmt.Errorf("failed to save customers: %w", err)
	}
	if err := s.writeFile(accountsFile, as); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}

// LoadAll reads both collections from disk. Each artifact loads
// independently: a missing file is the first-run case and yields an empty
// collection with no error, while a corrupt file yields an empty collection
// and a wrapped ErrSnapshotCorrupt for the caller to log. Startup never
// fails on a load error.
func (s *SnapshotStore) LoadAll() ([]*models.Customer, []*models.Account, error) {
	var customers []*models.Customer
	var accounts []*models.Account
	var loadErr error

	var cs customersSnapshot
	switch err := s.readFile(customersFile, &cs); {
	case err == nil:
		customers = make([]*models.Customer, 0, len(cs.Customers))
		for i := range cs.Customers {
			customers = append(customers, &cs.Customers[i])
		}
	case errors.Is(err, os.ErrNotExist):
		// first run
	default:
		loadErr = errors.Join(loadErr, fmt.Errorf("failed to load customers: %w", err))
	}

	var as accountsSnapshot
	switch err := s.readFile(accountsFile, &as); {
	case err == nil:
		accounts = make([]*models.Account, 0, len(as.Accounts))
		for _, st := range as.Accounts {
			accounts = append(accounts, models.AccountFromState(st))
		}
	case errors.Is(err, os.ErrNotExist):
		// first run
	default:
		loadErr = errors.Join(loadErr, fmt.Errorf("failed to load accounts: %w", err))
	}

	return customers, accounts, loadErr
}

// Clear deletes both snapshot files. Missing files are not an error.
func (s *SnapshotStore) Clear() error {
	for _, name := range []string{customersFile, accountsFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (s *SnapshotStore) writeFile(name string, v any) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func (s *SnapshotStore) readFile(name string, v any) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSnapshotCorrupt, name, err)
	}

	// Both snapshot types embed the same meta header under "_meta".
	var version int
	switch snap := v.(type) {
	case *customersSnapshot:
		version = snap.Meta.Version
	case *accountsSnapshot:
		version = snap.Meta.Version
	}
	if version != snapshotVersion {
		return fmt.Errorf("%w: %s: unsupported version %d", ErrSnapshotCorrupt, name, version)
	}
	return nil
}
