package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PasswordMinLength is the minimum password length
var PasswordMinLength = 8

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors to a field -> message map
func FormatValidationErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["body"] = err.Error()
		return fields
	}

	for _, e := range validationErrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			fields[field] = fmt.Sprintf("%s is required", e.Field())
		case "email":
			fields[field] = "Invalid email format"
		case "min":
			fields[field] = fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		case "max":
			fields[field] = fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
		case "gte":
			fields[field] = fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
		case "lte":
			fields[field] = fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
		case "oneof":
			fields[field] = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
		default:
			fields[field] = fmt.Sprintf("%s is invalid", e.Field())
		}
	}

	return fields
}

// ValidatePassword checks if a password meets minimum requirements
func ValidatePassword(password string) (bool, []string) {
	problems := []string{}

	if len(password) < PasswordMinLength {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters", PasswordMinLength))
	}

	hasLetter, hasDigit := false, false
	for _, char := range password {
		switch {
		case (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z'):
			hasLetter = true
		case char >= '0' && char <= '9':
			hasDigit = true
		}
	}
	if !hasLetter {
		problems = append(problems, "Password must contain at least one letter")
	}
	if !hasDigit {
		problems = append(problems, "Password must contain at least one number")
	}

	return len(problems) == 0, problems
}
