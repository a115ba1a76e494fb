// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/bankforge/bankforge/app/dto"
	businessflow "github.com/bankforge/bankforge/business_flow"
)

// AccountHandlerInterface defines the contract for authenticated account handlers
type AccountHandlerInterface interface {
	Deposit(c fiber.Ctx) error
	Withdraw(c fiber.Ctx) error
	Transfer(c fiber.Ctx) error
	ChangePIN(c fiber.Ctx) error
	Details(c fiber.Ctx) error
	History(c fiber.Ctx) error
	Statement(c fiber.Ctx) error
	ExportStatement(c fiber.Ctx) error
}

// AccountHandler handles all operations on the authenticated account
type AccountHandler struct {
	accountFlow   businessflow.AccountFlow
	transferFlow  businessflow.TransferFlow
	statementFlow businessflow.StatementFlow
	validator     *validator.Validate
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountFlow businessflow.AccountFlow, transferFlow businessflow.TransferFlow, statementFlow businessflow.StatementFlow) *AccountHandler {
	return &AccountHandler{
		accountFlow:   accountFlow,
		transferFlow:  transferFlow,
		statementFlow: statementFlow,
		validator:     validator.New(),
	}
}

func (h *AccountHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AccountHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// accountNumber extracts the authenticated account number set by the auth
// middleware.
func (h *AccountHandler) accountNumber(c fiber.Ctx) (int, bool) {
	number, ok := c.Locals("account_number").(int)
	return number, ok
}

// Deposit credits the authenticated account
func (h *AccountHandler) Deposit(c fiber.Ctx) error {
	number, ok := h.accountNumber(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session is not valid", "INVALID_SESSION", nil)
	}

	var req dto.AmountRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	result, err := h.accountFlow.Deposit(h.createRequestContext(c, "/api/v1/account/deposit"), number, &req)
	if err != nil {
		return h.mapAccountError(c, err, "Deposit failed", "DEPOSIT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Deposit successful", result)
}

// Withdraw debits the authenticated account
func (h *AccountHandler) Withdraw(c fiber.Ctx) error {
	number, ok := h.accountNumber(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session is not valid", "INVALID_SESSION", nil)
	}

	var req dto.AmountRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	result, err := h.accountFlow.Withdraw(h.createRequestContext(c, "/api/v1/account/withdraw"), number, &req)
	if err != nil {
		return h.mapAccountError(c, err, "Withdrawal failed", "WITHDRAWAL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Withdrawal successful", result)
}

// Transfer moves funds from the authenticated account to another account
func (h *AccountHandler) Transfer(c fiber.Ctx) error {
	number, ok := h.accountNumber(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session is not valid", "INVALID_SESSION", nil)
	}

	var req dto.TransferRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	result, err := h.transferFlow.Transfer(h.createRequestContext(c, "/api/v1/account/transfer"), number, &req)
	if err != nil {
		if businessflow.IsSelfTransfer(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Cannot transfer to the same account", "SELF_TRANSFER", nil)
		}
		if businessflow.IsInactiveDestination(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Target account is inactive", "TARGET_INACTIVE", nil)
		}
		return h.mapAccountError(c, err, "Transfer failed", "TRANSFER_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Transfer successful", result)
}

// ChangePIN replaces the PIN of the authenticated account
func (h *AccountHandler) ChangePIN(c fiber.Ctx) error {
	number, ok := h.accountNumber(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session is not valid", "INVALID_SESSION", nil)
	}

	var req dto.ChangePINRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	if err := h.accountFlow.ChangePIN(h.createRequestContext(c, "/api/v1/account/pin"), number, &req); err != nil {
		if businessflow.IsPINChangeRejected(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "PIN change rejected", "PIN_CHANGE_REJECTED", nil)
		}
		return h.mapAccountError(c, err, "PIN change failed", "PIN_CHANGE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "PIN changed successfully", nil)
}

// Details returns the authenticated account with its owner's contact info
func (h *AccountHandler) Details(c fiber.Ctx) error {
	number, ok := h.accountNumber(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session is not valid", "INVALID_SESSION", nil)
	}

	result, err := h.accountFlow.Details(h.createRequestContext(c, "/api/v1/account"), number)
	if err != nil {
		return h.mapAccountError(c, err, "Failed to load account details", "ACCOUNT_DETAILS_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Account details", result)
}

// History returns the authenticated account's transaction history
func (h *AccountHandler) History(c fiber.Ctx) error {
	number, ok := h.accountNumber(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session is not valid", "INVALID_SESSION", nil)
	}

	result, err := h.accountFlow.History(h.createRequestContext(c, "/api/v1/account/history"), number)
	if err != nil {
		return h.mapAccountError(c, err, "Failed to load history", "HISTORY_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Transaction history", result)
}

// Statement returns the rendered plain-text statement
func (h *AccountHandler) Statement(c fiber.Ctx) error {
	number, ok := h.accountNumber(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session is not valid", "INVALID_SESSION", nil)
	}

	result, err := h.statementFlow.Statement(h.createRequestContext(c, "/api/v1/account/statement"), number)
	if err != nil {
		return h.mapAccountError(c, err, "Failed to render statement", "STATEMENT_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Transaction statement", result)
}

// ExportStatement downloads the statement as an Excel workbook, or as plain
// text with ?format=txt
func (h *AccountHandler) ExportStatement(c fiber.Ctx) error {
	number, ok := h.accountNumber(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Session is not valid", "INVALID_SESSION", nil)
	}

	ctx := h.createRequestContext(c, "/api/v1/account/statement/export")

	var filename string
	var content []byte
	var contentType string
	var err error
	switch c.Query("format", "xlsx") {
	case "txt":
		filename, content, err = h.statementFlow.ExportText(ctx, number)
		contentType = "text/plain; charset=utf-8"
	case "xlsx":
		filename, content, err = h.statementFlow.ExportExcel(ctx, number)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Unsupported export format", "UNSUPPORTED_FORMAT", nil)
	}
	if err != nil {
		return h.mapAccountError(c, err, "Failed to export statement", "STATEMENT_EXPORT_FAILED")
	}

	c.Set("Content-Type", contentType)
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(content)
}

// mapAccountError maps the shared business errors to HTTP responses
func (h *AccountHandler) mapAccountError(c fiber.Ctx, err error, fallbackMessage, fallbackCode string) error {
	if businessflow.IsAccountNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Account not found", "ACCOUNT_NOT_FOUND", nil)
	}
	if businessflow.IsInvalidAmount(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Amount must be positive", "INVALID_AMOUNT", nil)
	}
	if businessflow.IsInsufficientFunds(err) {
		// Transfers include the current balance in the business error message
		message := "Insufficient funds"
		var be *businessflow.BusinessError
		if errors.As(err, &be) && be.Code == "INSUFFICIENT_FUNDS" {
			message = be.Message
		}
		return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, message, "INSUFFICIENT_FUNDS", nil)
	}
	if businessflow.IsCustomerNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Account owner not found", "CUSTOMER_NOT_FOUND", nil)
	}

	log.Println(fallbackMessage, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, fallbackCode, nil)
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *AccountHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}
