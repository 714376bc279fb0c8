package utils

import (
	"net/mail"
	"strings"

	"github.com/kenziemed/medclient/internal/models"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidateRegistration validates a registration submission against the
// platform's account rules.
func ValidateRegistration(input models.RegisterInput) *ValidationResult {
	result := NewValidationResult()

	if len(strings.TrimSpace(input.Name)) < 10 {
		result.AddError("name", "name must have at least 10 characters")
	}
	validateEmail(result, input.Email)
	validatePassword(result, input.Password)
	if input.ConfirmPassword != input.Password {
		result.AddError("confirmPassword", "passwords do not match")
	}
	if !ValidateCPF(input.CPF) {
		result.AddError("cpf", "invalid CPF")
	}
	if input.Age <= 0 {
		result.AddError("age", "age must be a positive integer")
	}
	if strings.TrimSpace(input.Sex) == "" {
		result.AddError("sex", "sex is required")
	}
	validateAddress(result, input.Address)
	if input.Contact != "" {
		if err := ValidateContactPhone(input.Contact); err != nil {
			result.AddError("contact", "invalid contact phone")
		}
	}

	return result
}

// ValidateEditProfile validates a profile-edit submission. The password
// is only checked when the caller is changing it.
func ValidateEditProfile(input models.EditProfileInput) *ValidationResult {
	result := NewValidationResult()

	if len(strings.TrimSpace(input.Name)) < 10 {
		result.AddError("name", "name must have at least 10 characters")
	}
	validateEmail(result, input.Email)
	if input.Password != "" {
		validatePassword(result, input.Password)
	}
	if !ValidateCPF(input.CPF) {
		result.AddError("cpf", "invalid CPF")
	}
	if input.Age <= 0 {
		result.AddError("age", "age must be a positive integer")
	}
	if strings.TrimSpace(input.Sex) == "" {
		result.AddError("sex", "sex is required")
	}
	validateAddress(result, input.Address)
	if input.Contact != "" {
		if err := ValidateContactPhone(input.Contact); err != nil {
			result.AddError("contact", "invalid contact phone")
		}
	}

	return result
}

func validateEmail(result *ValidationResult, email string) {
	if strings.TrimSpace(email) == "" {
		result.AddError("email", "email is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		result.AddError("email", "invalid email")
	}
}

// validatePassword enforces the platform's password rule: at least 8
// characters with one lower, one upper, one digit and one special from
// the accepted set.
func validatePassword(result *ValidationResult, password string) {
	if len(password) < 8 {
		result.AddError("password", "password must have at least 8 characters")
		return
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("$*+&@#", r):
			hasSpecial = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit || !hasSpecial {
		result.AddError("password", "password must contain lower, upper, digit and special ($*+&@#) characters")
	}
}

func validateAddress(result *ValidationResult, address models.Address) {
	if strings.TrimSpace(address.District) == "" {
		result.AddError("address.district", "district is required")
	}
	if strings.TrimSpace(address.ZipCode) == "" {
		result.AddError("address.zipCode", "zip code is required")
	}
	if strings.TrimSpace(address.Number) == "" {
		result.AddError("address.number", "number is required")
	}
	if strings.TrimSpace(address.City) == "" {
		result.AddError("address.city", "city is required")
	}
	if strings.TrimSpace(address.State) == "" {
		result.AddError("address.state", "state is required")
	}
}
