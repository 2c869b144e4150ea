// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("principal", validatePrincipal)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Principals are chain-style addresses: uppercase base58-ish, 3-128 chars.
func validatePrincipal(fl validator.FieldLevel) bool {
	principal := fl.Field().String()

	if len(principal) < 3 || len(principal) > 128 {
		return false
	}

	matched, _ := regexp.MatchString("^[A-Z0-9.\\-]+$", principal)
	return matched
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "principal":
		return e.Field() + " must be a valid principal address"
	default:
		return e.Field() + " is invalid"
	}
}
