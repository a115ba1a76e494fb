package businessflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bankforge/bankforge/app/dto"
	"github.com/bankforge/bankforge/app/services"
	"github.com/bankforge/bankforge/repository"
)

// fixedClock returns a constant time so flow tests produce stable timestamps
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

var testTime = time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC)

// indexOf fails the test when substr is absent instead of returning -1
func indexOf(t *testing.T, s, substr string) int {
	t.Helper()
	idx := strings.Index(s, substr)
	require.GreaterOrEqual(t, idx, 0, "expected %q to contain %q", s, substr)
	return idx
}

func newTestState(t *testing.T) *BankState {
	t.Helper()
	store, err := repository.NewSnapshotStore(t.TempDir())
	require.NoError(t, err)
	return NewBankState(repository.NewDirectory(), store)
}

func testSignupRequest(firstName, lastName string) *dto.SignupRequest {
	return &dto.SignupRequest{
		FirstName:     firstName,
		LastName:      lastName,
		Gender:        "Female",
		DateOfBirth:   "1990-06-15",
		NationalID:    "9006155012089",
		PhoneNumber:   "+27115550101",
		Email:         "jane@example.com",
		Nationality:   "South African",
		StreetAddress: "12 Main Rd",
		City:          "Cape Town",
		PostalCode:    "8001",
		Country:       "South Africa",
		Occupation:    "Engineer",
		EmployerName:  "Acme",
		MonthlyIncome: "45000",
		AccountType:   "Savings",
		PIN:           "1234",
		ConfirmPIN:    "1234",
	}
}

func signupTestAccount(t *testing.T, state *BankState, firstName, lastName string) *dto.SignupResponse {
	t.Helper()
	flow := NewSignupFlow(state, fixedClock{testTime}, bcrypt.MinCost)
	resp, err := flow.Signup(context.Background(), testSignupRequest(firstName, lastName))
	require.NoError(t, err)
	return resp
}

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()
	svc, err := services.NewTokenService(30*time.Minute, "test-issuer", "test-audience", "test-secret-key-for-jwt-signing-32-chars")
	require.NoError(t, err)
	return svc
}

func TestSignupFlowCreatesActiveAccount(t *testing.T) {
	state := newTestState(t)

	resp := signupTestAccount(t, state, "Jane", "Doe")

	assert.Regexp(t, `^C\d{8}$`, resp.CustomerID)
	assert.GreaterOrEqual(t, resp.AccountNumber, 100000000)
	assert.Equal(t, "Savings", resp.AccountType)

	account, ok := state.Directory().AccountByNumber(resp.AccountNumber)
	require.True(t, ok)
	assert.True(t, account.Active)
	assert.True(t, account.Balance().IsZero())
	assert.Equal(t, "Jane Doe", account.Holder)
	assert.True(t, account.ValidatePIN("1234"))

	customer, ok := state.Directory().CustomerByID(resp.CustomerID)
	require.True(t, ok)
	assert.Equal(t, "Jane", customer.FirstName)
}

func TestSignupFlowPersistsSnapshot(t *testing.T) {
	store, err := repository.NewSnapshotStore(t.TempDir())
	require.NoError(t, err)
	state := NewBankState(repository.NewDirectory(), store)

	resp := signupTestAccount(t, state, "Jane", "Doe")

	customers, accounts, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	require.Len(t, accounts, 1)
	assert.Equal(t, resp.AccountNumber, accounts[0].AccountNumber)
}

func TestSignupFlowRejectsBadInput(t *testing.T) {
	state := newTestState(t)
	flow := NewSignupFlow(state, fixedClock{testTime}, bcrypt.MinCost)

	tests := []struct {
		name   string
		mutate func(*dto.SignupRequest)
	}{
		{"bad date of birth", func(r *dto.SignupRequest) { r.DateOfBirth = "15-06-1990" }},
		{"bad monthly income", func(r *dto.SignupRequest) { r.MonthlyIncome = "lots" }},
		{"negative monthly income", func(r *dto.SignupRequest) { r.MonthlyIncome = "-1" }},
		{"unknown account type", func(r *dto.SignupRequest) { r.AccountType = "Premium" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testSignupRequest("Jane", "Doe")
			tt.mutate(req)
			_, err := flow.Signup(context.Background(), req)
			assert.Error(t, err)
		})
	}
}

func TestLoginFlow(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	flow := NewLoginFlow(state, newTestTokenService(t))

	result, err := flow.Login(context.Background(), &dto.LoginRequest{
		AccountNumber: resp.AccountNumber,
		PIN:           "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.AccountNumber, result.Account.AccountNumber)
	assert.Equal(t, "Bearer", result.Session.TokenType)
	assert.NotEmpty(t, result.Session.SessionToken)
	assert.Equal(t, int((30 * time.Minute).Seconds()), result.Session.ExpiresIn)
}

func TestLoginFlowFailsIdenticallyForBadPINAndUnknownAccount(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	flow := NewLoginFlow(state, newTestTokenService(t))

	_, wrongPINErr := flow.Login(context.Background(), &dto.LoginRequest{
		AccountNumber: resp.AccountNumber,
		PIN:           "0000",
	})
	_, unknownErr := flow.Login(context.Background(), &dto.LoginRequest{
		AccountNumber: 1,
		PIN:           "1234",
	})

	assert.True(t, IsAuthenticationFailed(wrongPINErr))
	assert.True(t, IsAuthenticationFailed(unknownErr))
	assert.Equal(t, wrongPINErr.Error(), unknownErr.Error())
}

func TestAccountFlowDepositAndWithdraw(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	flow := NewAccountFlow(state, fixedClock{testTime})

	deposit, err := flow.Deposit(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: "500"})
	require.NoError(t, err)
	assert.Equal(t, "500.00", deposit.NewBalance)

	withdraw, err := flow.Withdraw(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: "120.50"})
	require.NoError(t, err)
	assert.Equal(t, "379.50", withdraw.NewBalance)

	history, err := flow.History(context.Background(), resp.AccountNumber)
	require.NoError(t, err)
	require.Len(t, history.Transactions, 2)
	assert.Equal(t, "deposit", history.Transactions[0].Kind)
	assert.Equal(t, "withdrawal", history.Transactions[1].Kind)
}

func TestAccountFlowWithdrawInsufficientFunds(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	flow := NewAccountFlow(state, fixedClock{testTime})

	_, err := flow.Deposit(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: "500"})
	require.NoError(t, err)

	_, err = flow.Withdraw(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: "600"})
	assert.True(t, IsInsufficientFunds(err))

	details, err := flow.Details(context.Background(), resp.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, "500.00", details.Account.Balance)
}

func TestAccountFlowRejectsBadAmounts(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	flow := NewAccountFlow(state, fixedClock{testTime})

	for _, amount := range []string{"0", "-5", "abc", ""} {
		_, err := flow.Deposit(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: amount})
		assert.True(t, IsInvalidAmount(err), "amount %q must be rejected", amount)
	}
}

func TestAccountFlowUnknownAccount(t *testing.T) {
	state := newTestState(t)
	flow := NewAccountFlow(state, fixedClock{testTime})

	_, err := flow.Details(context.Background(), 1)
	assert.True(t, IsAccountNotFound(err))
}

func TestAccountFlowChangePIN(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	flow := NewAccountFlow(state, fixedClock{testTime})

	err := flow.ChangePIN(context.Background(), resp.AccountNumber, &dto.ChangePINRequest{
		CurrentPIN:    "1234",
		NewPIN:        "5678",
		ConfirmNewPIN: "5678",
	})
	require.NoError(t, err)

	account, ok := state.Directory().AccountByNumber(resp.AccountNumber)
	require.True(t, ok)
	assert.True(t, account.ValidatePIN("5678"))
	assert.False(t, account.ValidatePIN("1234"))

	err = flow.ChangePIN(context.Background(), resp.AccountNumber, &dto.ChangePINRequest{
		CurrentPIN:    "1234",
		NewPIN:        "9999",
		ConfirmNewPIN: "9999",
	})
	assert.True(t, IsPINChangeRejected(err))
}

func TestRecoveryFlow(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	flow := NewRecoveryFlow(state)

	result, err := flow.Recover(context.Background(), &dto.RecoverRequest{Name: "jane"})
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, resp.AccountNumber, result.Matches[0].AccountNumber)
	assert.Equal(t, "Jane Doe", result.Matches[0].FullName)

	result, err = flow.Recover(context.Background(), &dto.RecoverRequest{Name: "jane", PhoneNumber: "+27115550101"})
	require.NoError(t, err)
	assert.Len(t, result.Matches, 1)
}

func TestRecoveryFlowRequiresCriteria(t *testing.T) {
	state := newTestState(t)
	flow := NewRecoveryFlow(state)

	_, err := flow.Recover(context.Background(), &dto.RecoverRequest{Name: "   "})
	assert.True(t, IsNoSearchCriteria(err))
}

func TestRecoveryFlowNoMatches(t *testing.T) {
	state := newTestState(t)
	signupTestAccount(t, state, "Jane", "Doe")
	flow := NewRecoveryFlow(state)

	_, err := flow.Recover(context.Background(), &dto.RecoverRequest{Name: "nobody"})
	assert.True(t, IsCustomerNotFound(err))
}

func TestStatementFlowNewestFirst(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	accountFlow := NewAccountFlow(state, fixedClock{testTime})
	flow := NewStatementFlow(state)

	_, err := accountFlow.Deposit(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: "500"})
	require.NoError(t, err)
	_, err = accountFlow.Withdraw(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: "120"})
	require.NoError(t, err)

	statement, err := flow.Statement(context.Background(), resp.AccountNumber)
	require.NoError(t, err)

	assert.Equal(t, resp.AccountNumber, statement.AccountNumber)
	assert.Equal(t, "Jane Doe", statement.AccountHolder)
	assert.Equal(t, "380.00", statement.Balance)
	assert.Equal(t, 2, statement.TotalTransactions)

	// The withdrawal happened last, so it renders first
	withdrewAt := indexOf(t, statement.Content, "Withdrew R120.00")
	depositedAt := indexOf(t, statement.Content, "Deposited R500.00")
	assert.Less(t, withdrewAt, depositedAt)
}

func TestStatementFlowEmptyHistory(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	flow := NewStatementFlow(state)

	statement, err := flow.Statement(context.Background(), resp.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, 0, statement.TotalTransactions)
	assert.Contains(t, statement.Content, "No transactions yet.")
}

func TestStatementFlowExportText(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	accountFlow := NewAccountFlow(state, fixedClock{testTime})
	flow := NewStatementFlow(state)

	_, err := accountFlow.Deposit(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: "500"})
	require.NoError(t, err)

	filename, content, err := flow.ExportText(context.Background(), resp.AccountNumber)
	require.NoError(t, err)
	assert.Contains(t, filename, ".txt")
	assert.Contains(t, string(content), "Deposited R500.00")
	assert.Contains(t, string(content), "Transaction Statement")
}

func TestStatementFlowExportExcel(t *testing.T) {
	state := newTestState(t)
	resp := signupTestAccount(t, state, "Jane", "Doe")
	accountFlow := NewAccountFlow(state, fixedClock{testTime})
	flow := NewStatementFlow(state)

	_, err := accountFlow.Deposit(context.Background(), resp.AccountNumber, &dto.AmountRequest{Amount: "500"})
	require.NoError(t, err)

	filename, content, err := flow.ExportExcel(context.Background(), resp.AccountNumber)
	require.NoError(t, err)
	assert.Contains(t, filename, ".xlsx")
	assert.NotEmpty(t, content)
	// XLSX files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, content[:2])
}
