package validation

import (
	"time"
)

// TimeEntryValidator provides validation for time-entry operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// ValidateEditReason validates the reason text required for an entry edit
func (tev *TimeEntryValidator) ValidateEditReason(reason string) error {
	validationError := NewValidationError()

	if !tev.validator.IsNonEmptyString(reason) {
		validationError.AddRequiredError("edit_note")
		return validationError
	}

	return nil
}

// ValidateEditTimes validates the login/logout pair of an entry edit.
// The logout time may be nil, which reopens the entry.
func (tev *TimeEntryValidator) ValidateEditTimes(loginTime time.Time, logoutTime *time.Time) error {
	validationError := NewValidationError()

	if loginTime.IsZero() {
		validationError.AddRequiredError("login_time")
		return validationError
	}

	if !tev.validator.IsValidTimeRange(loginTime, logoutTime) {
		validationError.AddInvalidRangeError("logout_time", logoutTime, "logout time cannot be before login time")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}
