package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankforge/bankforge/models"
)

func registerTestCustomer(t *testing.T, d *Directory, firstName, lastName, phone, email string) (*models.Customer, *models.Account) {
	t.Helper()
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	customer := &models.Customer{
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phone,
		Email:       email,
		CreatedAt:   now,
	}
	account := models.NewAccount(models.AccountTypeSavings, customer.FullName(), "", "digest", now)
	d.Register(customer, account)
	return customer, account
}

func TestDirectoryRegisterAssignsIdentifiers(t *testing.T) {
	d := NewDirectory()

	customer, account := registerTestCustomer(t, d, "Jane", "Doe", "+27115550101", "jane@example.com")

	assert.Regexp(t, `^C\d{8}$`, customer.CustomerID)
	assert.GreaterOrEqual(t, account.AccountNumber, 100000000)
	assert.LessOrEqual(t, account.AccountNumber, 999999999)
	assert.Equal(t, customer.CustomerID, account.CustomerID)
}

func TestDirectoryLookups(t *testing.T) {
	d := NewDirectory()
	customer, account := registerTestCustomer(t, d, "Jane", "Doe", "+27115550101", "jane@example.com")

	byID, ok := d.CustomerByID(customer.CustomerID)
	require.True(t, ok)
	assert.Same(t, customer, byID)

	byCustomer, ok := d.AccountByCustomerID(customer.CustomerID)
	require.True(t, ok)
	assert.Same(t, account, byCustomer)

	byNumber, ok := d.AccountByNumber(account.AccountNumber)
	require.True(t, ok)
	assert.Same(t, account, byNumber)

	_, ok = d.AccountByNumber(1)
	assert.False(t, ok)
	_, ok = d.CustomerByID("C00000000")
	assert.False(t, ok)
}

func TestDirectoryRegisterUniqueIdentifiers(t *testing.T) {
	d := NewDirectory()

	seenCustomers := make(map[string]bool)
	seenAccounts := make(map[int]bool)
	for i := 0; i < 50; i++ {
		customer, account := registerTestCustomer(t, d, "Jane", "Doe", "+27115550101", "")
		assert.False(t, seenCustomers[customer.CustomerID])
		assert.False(t, seenAccounts[account.AccountNumber])
		seenCustomers[customer.CustomerID] = true
		seenAccounts[account.AccountNumber] = true
	}
}

func TestDirectoryMatchCustomers(t *testing.T) {
	d := NewDirectory()
	jane, _ := registerTestCustomer(t, d, "Jane", "Doe", "+27115550101", "jane@example.com")
	john, _ := registerTestCustomer(t, d, "John", "Smith", "+27115550102", "john@example.com")
	registerTestCustomer(t, d, "Janet", "Jones", "+27115550103", "")

	tests := []struct {
		name      string
		nameQuery string
		phone     string
		email     string
		want      int
	}{
		{"name substring matches two", "jan", "", "", 2},
		{"name is case-insensitive", "JANE", "", "", 2},
		{"full name substring", "jane doe", "", "", 1},
		{"phone exact", "", "+27115550102", "", 1},
		{"phone partial does not match", "", "5550102", "", 0},
		{"email case-insensitive exact", "", "", "JANE@example.com", 1},
		{"all criteria must match", "jane", "+27115550102", "", 0},
		{"name and phone together", "john", "+27115550102", "", 1},
		{"no match", "nobody", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := d.MatchCustomers(tt.nameQuery, tt.phone, tt.email)
			assert.Len(t, matches, tt.want)
		})
	}

	// Matches come back ordered by customer ID
	matches := d.MatchCustomers("", "", "jane@example.com")
	require.Len(t, matches, 1)
	assert.Equal(t, jane.CustomerID, matches[0].CustomerID)

	matches = d.MatchCustomers("smith", "", "")
	require.Len(t, matches, 1)
	assert.Equal(t, john.CustomerID, matches[0].CustomerID)
}

func TestDirectoryCollectionsAreSorted(t *testing.T) {
	d := NewDirectory()
	for i := 0; i < 10; i++ {
		registerTestCustomer(t, d, "Jane", "Doe", "+27115550101", "")
	}

	customers := d.Customers()
	require.Len(t, customers, 10)
	for i := 1; i < len(customers); i++ {
		assert.Less(t, customers[i-1].CustomerID, customers[i].CustomerID)
	}

	accounts := d.Accounts()
	require.Len(t, accounts, 10)
	for i := 1; i < len(accounts); i++ {
		assert.Less(t, accounts[i-1].AccountNumber, accounts[i].AccountNumber)
	}
}

func TestDirectoryLoadReplacesContents(t *testing.T) {
	d := NewDirectory()
	registerTestCustomer(t, d, "Old", "Customer", "+27115550100", "")

	now := time.Now().UTC()
	customer := &models.Customer{CustomerID: "C11111111", FirstName: "New", LastName: "Customer", CreatedAt: now}
	account := models.NewAccount(models.AccountTypeCurrent, "New Customer", customer.CustomerID, "digest", now)
	account.AccountNumber = 123456789

	d.Load([]*models.Customer{customer}, []*models.Account{account})

	assert.Len(t, d.Customers(), 1)
	_, ok := d.AccountByNumber(123456789)
	assert.True(t, ok)
}
