package dto

// SignupRequest carries the full registration form. Format checks live here
// as validator tags; the core flows only enforce business invariants.
type SignupRequest struct {
	// Basic information
	FirstName   string `json:"first_name" validate:"required,max=60,alpha_space"`
	LastName    string `json:"last_name" validate:"required,max=60,alpha_space"`
	Gender      string `json:"gender" validate:"required,oneof='Male' 'Female' 'Other' 'Prefer not to say'"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	NationalID  string `json:"national_id" validate:"required,len=13,numeric"`
	PhoneNumber string `json:"phone_number" validate:"required,phone_format"`
	Email       string `json:"email" validate:"omitempty,email,max=255"`
	Nationality string `json:"nationality" validate:"required,max=60"`

	// Address information
	StreetAddress string `json:"street_address" validate:"required,max=255"`
	City          string `json:"city" validate:"required,max=60"`
	PostalCode    string `json:"postal_code" validate:"required,numeric,max=10"`
	Country       string `json:"country" validate:"required,max=60"`

	// Occupation information
	Occupation    string `json:"occupation" validate:"required,max=60"`
	EmployerName  string `json:"employer_name" validate:"required,max=60"`
	MonthlyIncome string `json:"monthly_income" validate:"required,numeric"`

	// Account information
	AccountType string `json:"account_type" validate:"required,oneof='Savings' 'Current' 'Fixed Deposit' 'Student Account' 'Business Account'"`
	PIN         string `json:"pin" validate:"required,len=4,numeric"`
	ConfirmPIN  string `json:"confirm_pin" validate:"required,eqfield=PIN"`
}

// SignupResponse returns the generated identifiers the customer needs for
// future logins.
type SignupResponse struct {
	CustomerID    string `json:"customer_id"`
	AccountNumber int    `json:"account_number"`
	AccountType   string `json:"account_type"`
	OpenedAt      string `json:"opened_at"`
}
