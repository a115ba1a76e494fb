// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"github.com/go-playground/validator/v10"
)

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "len":
		return err.Field() + " must be exactly " + err.Param() + " characters"
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	case "eqfield":
		return err.Field() + " must match " + err.Param()
	case "datetime":
		return err.Field() + " must be a date in format " + err.Param()
	case "alpha_space":
		return err.Field() + " must contain only letters and spaces"
	case "phone_format":
		return "Phone number must start with an optional + followed by 7 to 15 digits"
	case "numeric":
		return err.Field() + " must contain only numbers"
	default:
		return err.Field() + " is invalid"
	}
}

// registerCustomValidations installs the validation rules shared by the
// handlers that accept registration and recovery forms.
func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("alpha_space", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, char := range value {
			if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || char == ' ') {
				return false
			}
		}
		return true
	})

	v.RegisterValidation("phone_format", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if len(value) > 0 && value[0] == '+' {
			value = value[1:]
		}
		if len(value) < 7 || len(value) > 15 {
			return false
		}
		for _, char := range value {
			if char < '0' || char > '9' {
				return false
			}
		}
		return true
	})
}
