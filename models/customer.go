// Package models contains the domain entities and business rules for the banking system
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer holds a registered customer's identity and profile. Customers
// never own their accounts directly; the repository directory maps a
// customer identifier to its account.
type Customer struct {
	CustomerID string `json:"customer_id"`

	// Basic information
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Gender      string    `json:"gender"`
	DateOfBirth time.Time `json:"date_of_birth"`
	NationalID  string    `json:"national_id"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email,omitempty"` // optional
	Nationality string    `json:"nationality"`

	// Address information
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`

	// Occupation information
	Occupation    string          `json:"occupation"`
	EmployerName  string          `json:"employer_name"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`

	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the customer's display name, which is also recorded as
// the account holder on the customer's account.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
