package validation

import (
	"timeclock/internal/domain"
)

// UserValidator provides validation for user-related operations
type UserValidator struct {
	validator *Validator
}

// NewUserValidator creates a new user validator
func NewUserValidator() *UserValidator {
	return &UserValidator{
		validator: NewValidator(),
	}
}

// ValidatePIN validates a PIN used for login or account creation
func (uv *UserValidator) ValidatePIN(pin string) error {
	validationError := NewValidationError()

	if !uv.validator.IsNonEmptyString(pin) {
		validationError.AddRequiredError("pin")
		return validationError
	}

	if !uv.validator.IsValidPIN(pin) {
		validationError.AddInvalidFormatError("pin", pin, "digits only")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateNewUser validates the fields of a user account to be created
func (uv *UserValidator) ValidateNewUser(name, pin string, role domain.Role) error {
	validationError := NewValidationError()

	if !uv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	}

	if !uv.validator.IsNonEmptyString(pin) {
		validationError.AddRequiredError("pin")
	} else if !uv.validator.IsValidPIN(pin) {
		validationError.AddInvalidFormatError("pin", pin, "digits only")
	}

	if !role.IsValid() {
		validationError.AddInvalidValueError("role", string(role), "must be ADMIN, TIMEKEEPER or worker")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateSuspensionNote validates the note accompanying a suspension change
func (uv *UserValidator) ValidateSuspensionNote(note string) error {
	validationError := NewValidationError()

	if !uv.validator.IsNonEmptyString(note) {
		validationError.AddRequiredError("note")
		return validationError
	}

	return nil
}
