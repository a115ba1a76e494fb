// Package businessflow contains the core business logic and use cases for the banking workflows
package businessflow

import (
	"context"
	"strings"

	"github.com/bankforge/bankforge/app/dto"
)

// RecoveryFlow handles the forgotten-account lookup business logic
type RecoveryFlow interface {
	Recover(ctx context.Context, req *dto.RecoverRequest) (*dto.RecoverResponse, error)
}

// RecoveryFlowImpl implements the account recovery business flow
type RecoveryFlowImpl struct {
	state *BankState
}

// NewRecoveryFlow creates a new recovery flow instance
func NewRecoveryFlow(state *BankState) RecoveryFlow {
	return &RecoveryFlowImpl{state: state}
}

// Recover finds customers by contact details so they can retrieve a lost
// account number. Every provided criterion must match; the response never
// includes the PIN or the balance.
func (r *RecoveryFlowImpl) Recover(ctx context.Context, req *dto.RecoverRequest) (*dto.RecoverResponse, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.PhoneNumber)
	email := strings.TrimSpace(req.Email)
	if name == "" && phone == "" && email == "" {
		return nil, NewBusinessError("RECOVERY_VALIDATION_FAILED", "At least one search field is required", ErrNoSearchCriteria)
	}

	r.state.Lock()
	defer r.state.Unlock()

	customers := r.state.Directory().MatchCustomers(name, phone, email)
	if len(customers) == 0 {
		return nil, NewBusinessError("CUSTOMER_NOT_FOUND", "No matching customers found", ErrCustomerNotFound)
	}

	matches := make([]dto.RecoveredAccountDTO, 0, len(customers))
	for _, customer := range customers {
		account, ok := r.state.Directory().AccountByCustomerID(customer.CustomerID)
		if !ok {
			continue
		}
		matches = append(matches, dto.RecoveredAccountDTO{
			FullName:      customer.FullName(),
			CustomerID:    customer.CustomerID,
			AccountNumber: account.AccountNumber,
			PhoneNumber:   customer.PhoneNumber,
			Email:         customer.Email,
		})
	}

	return &dto.RecoverResponse{Matches: matches}, nil
}
