// Package models contains the domain entities and business rules for the banking system
package models

// Account type constants. The set is open: an account stores its type as a
// plain tag, and unknown tags are carried through persistence untouched.
const (
	AccountTypeSavings      = "Savings"
	AccountTypeCurrent      = "Current"
	AccountTypeFixedDeposit = "Fixed Deposit"
	AccountTypeStudent      = "Student Account"
	AccountTypeBusiness     = "Business Account"
)

// KnownAccountTypes returns the account types offered at registration time.
func KnownAccountTypes() []string {
	return []string{
		AccountTypeSavings,
		AccountTypeCurrent,
		AccountTypeFixedDeposit,
		AccountTypeStudent,
		AccountTypeBusiness,
	}
}

// IsKnownAccountType reports whether t is one of the offered account types.
func IsKnownAccountType(t string) bool {
	for _, known := range KnownAccountTypes() {
		if t == known {
			return true
		}
	}
	return false
}
