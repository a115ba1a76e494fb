// Package businessflow contains the core business logic and use cases for the banking workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"github.com/shopspring/decimal"

	"github.com/bankforge/bankforge/app/dto"
	"github.com/bankforge/bankforge/models"
)

// SignupFlow handles the complete customer registration business logic
type SignupFlow interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
}

// SignupFlowImpl implements the signup business flow
type SignupFlowImpl struct {
	state      *BankState
	clock      Clock
	bcryptCost int
}

// NewSignupFlow creates a new signup flow instance
func NewSignupFlow(state *BankState, clock Clock, bcryptCost int) SignupFlow {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &SignupFlowImpl{
		state:      state,
		clock:      clock,
		bcryptCost: bcryptCost,
	}
}

// Signup registers a new customer and opens their account in one step. The
// account starts active with a zero balance, and the snapshot is saved
// before the response is returned.
func (s *SignupFlowImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, NewBusinessError("SIGNUP_VALIDATION_FAILED", "Invalid date of birth", err)
	}
	monthlyIncome, err := decimal.NewFromString(req.MonthlyIncome)
	if err != nil || monthlyIncome.IsNegative() {
		return nil, NewBusinessError("SIGNUP_VALIDATION_FAILED", "Invalid monthly income", ErrInvalidAmount)
	}
	if !models.IsKnownAccountType(req.AccountType) {
		return nil, NewBusinessError("SIGNUP_VALIDATION_FAILED",
			fmt.Sprintf("Unknown account type %q", req.AccountType), nil)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(req.PIN), s.bcryptCost)
	if err != nil {
		return nil, NewBusinessError("SIGNUP_FAILED", "Failed to secure PIN", err)
	}

	now := s.clock.Now()
	customer := &models.Customer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Gender:        req.Gender,
		DateOfBirth:   dateOfBirth,
		NationalID:    req.NationalID,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Nationality:   req.Nationality,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Occupation:    req.Occupation,
		EmployerName:  req.EmployerName,
		MonthlyIncome: monthlyIncome,
		CreatedAt:     now,
	}
	account := models.NewAccount(req.AccountType, customer.FullName(), "", string(digest), now)

	s.state.Lock()
	defer s.state.Unlock()

	s.state.Directory().Register(customer, account)
	s.state.persistLogged("signup")

	return &dto.SignupResponse{
		CustomerID:    customer.CustomerID,
		AccountNumber: account.AccountNumber,
		AccountType:   account.Type,
		OpenedAt:      account.OpenedAt.Format(time.RFC3339),
	}, nil
}
