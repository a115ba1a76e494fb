// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/bankforge/bankforge/app/dto"
	businessflow "github.com/bankforge/bankforge/business_flow"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Signup(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Recover(c fiber.Ctx) error
}

// AuthHandler handles registration, login, and account recovery requests
type AuthHandler struct {
	signupFlow   businessflow.SignupFlow
	loginFlow    businessflow.LoginFlow
	recoveryFlow businessflow.RecoveryFlow
	validator    *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(signupFlow businessflow.SignupFlow, loginFlow businessflow.LoginFlow, recoveryFlow businessflow.RecoveryFlow) *AuthHandler {
	handler := &AuthHandler{
		signupFlow:   signupFlow,
		loginFlow:    loginFlow,
		recoveryFlow: recoveryFlow,
		validator:    validator.New(),
	}

	registerCustomValidations(handler.validator)

	return handler
}

func (h *AuthHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AuthHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Signup handles customer registration and account opening
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
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

	result, err := h.signupFlow.Signup(h.createRequestContext(c, "/api/v1/auth/signup"), &req)
	if err != nil {
		if businessflow.IsInvalidAmount(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid monthly income", "INVALID_MONTHLY_INCOME", nil)
		}

		log.Println("Signup failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Signup failed", "SIGNUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Account created successfully", result)
}

// Login handles account authentication
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
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

	result, err := h.loginFlow.Login(h.createRequestContext(c, "/api/v1/auth/login"), &req)
	if err != nil {
		if businessflow.IsAuthenticationFailed(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid account number or PIN", "AUTHENTICATION_FAILED", nil)
		}

		log.Println("Login failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Login successful", result)
}

// Recover finds accounts by the customer's contact details
func (h *AuthHandler) Recover(c fiber.Ctx) error {
	var req dto.RecoverRequest
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

	result, err := h.recoveryFlow.Recover(h.createRequestContext(c, "/api/v1/auth/recover"), &req)
	if err != nil {
		if businessflow.IsNoSearchCriteria(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "At least one search field is required", "NO_SEARCH_CRITERIA", nil)
		}
		if businessflow.IsCustomerNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No matching customers found", "CUSTOMER_NOT_FOUND", nil)
		}

		log.Println("Recovery failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Recovery failed", "RECOVERY_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Matching accounts found", result)
}

// createRequestContext creates a context with timeout and request-scoped values
func (h *AuthHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContextWithTimeout(c, endpoint, 30*time.Second)
}

func createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	ctx = context.WithValue(ctx, "request_id", c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, "user_agent", c.Get("User-Agent"))
	ctx = context.WithValue(ctx, "ip_address", c.IP())
	ctx = context.WithValue(ctx, "endpoint", endpoint)
	ctx = context.WithValue(ctx, "cancel_func", cancel)

	return ctx
}
