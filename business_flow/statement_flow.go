// Package businessflow contains the core business logic and use cases for the banking workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bankforge/bankforge/app/dto"
	"github.com/bankforge/bankforge/models"
)

// StatementFlow renders and exports an account's transaction statement
type StatementFlow interface {
	Statement(ctx context.Context, accountNumber int) (*dto.StatementResponse, error)
	ExportText(ctx context.Context, accountNumber int) (string, []byte, error)
	ExportExcel(ctx context.Context, accountNumber int) (string, []byte, error)
}

// StatementFlowImpl implements the statement business flow
type StatementFlowImpl struct {
	state *BankState
}

// NewStatementFlow creates a new statement flow instance
func NewStatementFlow(state *BankState) StatementFlow {
	return &StatementFlowImpl{state: state}
}

// Statement renders the plain-text statement, newest transaction first.
func (s *StatementFlowImpl) Statement(ctx context.Context, accountNumber int) (*dto.StatementResponse, error) {
	s.state.Lock()
	defer s.state.Unlock()

	account, ok := s.state.Directory().AccountByNumber(accountNumber)
	if !ok {
		return nil, NewBusinessError("ACCOUNT_NOT_FOUND", "Account not found", ErrAccountNotFound)
	}
	history := account.History()

	var b strings.Builder
	fmt.Fprintf(&b, "Transaction Statement\n")
	fmt.Fprintf(&b, "Account Number: %d\n", account.AccountNumber)
	fmt.Fprintf(&b, "Account Holder: %s\n", account.Holder)
	fmt.Fprintf(&b, "Account Type: %s\n", account.Type)
	fmt.Fprintf(&b, "Current Balance: R%s\n", account.Balance().StringFixed(2))
	fmt.Fprintf(&b, "Total Transactions: %d\n", len(history))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	if len(history) == 0 {
		b.WriteString("No transactions yet.\n")
	}
	for i := len(history) - 1; i >= 0; i-- {
		b.WriteString(history[i].String() + "\n")
	}

	return &dto.StatementResponse{
		AccountNumber:     account.AccountNumber,
		AccountHolder:     account.Holder,
		AccountType:       account.Type,
		Balance:           account.Balance().StringFixed(2),
		TotalTransactions: len(history),
		Content:           b.String(),
	}, nil
}

// ExportText renders the statement as a downloadable text file.
func (s *StatementFlowImpl) ExportText(ctx context.Context, accountNumber int) (string, []byte, error) {
	statement, err := s.Statement(ctx, accountNumber)
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("statement_%d.txt", statement.AccountNumber)
	return filename, []byte(statement.Content), nil
}

// ExportExcel renders the statement as a workbook, newest transaction first,
// and returns the suggested filename with the file contents.
func (s *StatementFlowImpl) ExportExcel(ctx context.Context, accountNumber int) (string, []byte, error) {
	s.state.Lock()
	defer s.state.Unlock()

	account, ok := s.state.Directory().AccountByNumber(accountNumber)
	if !ok {
		return "", nil, NewBusinessError("ACCOUNT_NOT_FOUND", "Account not found", ErrAccountNotFound)
	}
	history := account.History()

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := "Statement"
	xl.SetSheetName(xl.GetSheetName(0), sheet)

	header := []string{"date", "kind", "amount", "counterparty", "description", "details"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	row := 2
	for i := len(history) - 1; i >= 0; i-- {
		rec := history[i]
		record := []string{
			rec.CreatedAt.UTC().Format(time.RFC3339),
			string(rec.Kind),
			formatAmountCell(rec),
			formatCounterpartyCell(rec),
			rec.Description,
			rec.String(),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, row)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
		row++
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	filename := fmt.Sprintf("statement_%d.xlsx", account.AccountNumber)
	return filename, buf.Bytes(), nil
}

func formatAmountCell(rec models.TransactionRecord) string {
	if rec.Amount == nil {
		return ""
	}
	return rec.Amount.StringFixed(2)
}

func formatCounterpartyCell(rec models.TransactionRecord) string {
	if rec.Counterparty == nil {
		return ""
	}
	return fmt.Sprintf("%d", *rec.Counterparty)
}
