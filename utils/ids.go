// Package utils provides utility functions for the application.
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Account numbers are nine-digit integers and customer identifiers are a 'C'
// prefix followed by eight digits. Randomness alone does not guarantee
// uniqueness at this width; callers must check generated values against
// existing entries and re-roll on collision.

const (
	accountNumberMin = 100_000_000
	accountNumberMax = 999_999_999

	customerIDDigitsMin = 10_000_000
	customerIDDigitsMax = 99_999_999
)

// GenerateAccountNumber returns a random nine-digit account number.
func GenerateAccountNumber() int {
	return int(randomInRange(accountNumberMin, accountNumberMax))
}

// GenerateCustomerID returns a random customer identifier of the form C12345678.
func GenerateCustomerID() string {
	return fmt.Sprintf("C%d", randomInRange(customerIDDigitsMin, customerIDDigitsMax))
}

func randomInRange(min, max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(fmt.Sprintf("utils: random source unavailable: %v", err))
	}
	return min + n.Int64()
}
