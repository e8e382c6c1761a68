package validation

import (
	"regexp"
	"strings"
	"time"
)

// Validator provides common validation utilities
type Validator struct {
	pinRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		pinRegex: regexp.MustCompile(`^[0-9]+$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidPIN checks if a PIN is a non-empty string of digits
func (v *Validator) IsValidPIN(pin string) bool {
	return v.pinRegex.MatchString(pin)
}

// IsValidTimeRange checks that a logout time does not precede the login time.
// A nil logout time means an open session, which is always valid.
func (v *Validator) IsValidTimeRange(loginTime time.Time, logoutTime *time.Time) bool {
	if logoutTime == nil {
		return true
	}
	return !logoutTime.Before(loginTime)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
