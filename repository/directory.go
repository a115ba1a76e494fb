// Package repository provides the in-memory directory of customers and
// accounts and the snapshot persistence gateway backing it.
package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/bankforge/bankforge/models"
	"github.com/bankforge/bankforge/utils"
)

// Directory is the authoritative in-memory index of all customers and
// accounts. The primary maps are keyed by customer identifier; a secondary
// index supports lookup by account number for login and transfers.
//
// The directory's own lock keeps the maps internally consistent. Atomicity
// of multi-entity operations (a transfer mutating two accounts) is the
// business flows' responsibility; they serialize whole operations behind a
// shared state lock.
type Directory struct {
	mu        sync.RWMutex
	customers map[string]*models.Customer
	accounts  map[string]*models.Account // customer ID -> account
	byNumber  map[int]*models.Account
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		customers: make(map[string]*models.Customer),
		accounts:  make(map[string]*models.Account),
		byNumber:  make(map[int]*models.Account),
	}
}

// Load replaces the directory contents with the given collections,
// typically the result of SnapshotStore.LoadAll at startup.
func (d *Directory) Load(customers []*models.Customer, accounts []*models.Account) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.customers = make(map[string]*models.Customer, len(customers))
	d.accounts = make(map[string]*models.Account, len(accounts))
	d.byNumber = make(map[int]*models.Account, len(accounts))

	for _, c := range customers {
		d.customers[c.CustomerID] = c
	}
	for _, a := range accounts {
		d.accounts[a.CustomerID] = a
		d.byNumber[a.AccountNumber] = a
	}
}

// Register assigns a fresh customer identifier and account number, both
// checked for uniqueness against existing entries rather than trusting
// random-range improbability, and inserts both entities.
func (d *Directory) Register(customer *models.Customer, account *models.Account) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		id := utils.GenerateCustomerID()
		if _, exists := d.customers[id]; !exists {
			customer.CustomerID = id
			break
		}
	}
	for {
		number := utils.GenerateAccountNumber()
		if _, exists := d.byNumber[number]; !exists {
			account.AccountNumber = number
			break
		}
	}
	account.CustomerID = customer.CustomerID

	d.customers[customer.CustomerID] = customer
	d.accounts[customer.CustomerID] = account
	d.byNumber[account.AccountNumber] = account
}

// CustomerByID returns the customer with the given identifier.
func (d *Directory) CustomerByID(customerID string) (*models.Customer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.customers[customerID]
	return c, ok
}

// AccountByCustomerID returns the account owned by the given customer.
func (d *Directory) AccountByCustomerID(customerID string) (*models.Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.accounts[customerID]
	return a, ok
}

// AccountByNumber returns the account with the given account number.
func (d *Directory) AccountByNumber(number int) (*models.Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.byNumber[number]
	return a, ok
}

// MatchCustomers returns customers matching every non-empty criterion:
// case-insensitive substring on full name, exact match on phone, and
// case-insensitive exact match on email. Callers must provide at least one
// criterion; with all three empty, every customer matches.
func (d *Directory) MatchCustomers(name, phone, email string) []*models.Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	var matches []*models.Customer
	for _, c := range d.customers {
		nameMatch := name == "" || strings.Contains(strings.ToLower(c.FullName()), name)
		phoneMatch := phone == "" || c.PhoneNumber == phone
		emailMatch := email == "" || strings.EqualFold(c.Email, email)
		if nameMatch && phoneMatch && emailMatch {
			matches = append(matches, c)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CustomerID < matches[j].CustomerID
	})
	return matches
}

// Customers returns all customers ordered by customer identifier.
func (d *Directory) Customers() []*models.Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*models.Customer, 0, len(d.customers))
	for _, c := range d.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CustomerID < out[j].CustomerID
	})
	return out
}

// Accounts returns all accounts ordered by account number.
func (d *Directory) Accounts() []*models.Account {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*models.Account, 0, len(d.byNumber))
	for _, a := range d.byNumber {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountNumber < out[j].AccountNumber
	})
	return out
}
