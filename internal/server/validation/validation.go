// Package validation contains explicit per-input validation functions run by
// the HTTP handlers before any service call. Each failure names the offending
// field and matches common.ErrorInvalidRequest under errors.Is.
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/easygoapi/easygo/internal/common"
)

// mobilePattern accepts a "+" followed by exactly 12 digits.
var mobilePattern = regexp.MustCompile(`^\+\d{12}$`)

const codeLength = 6

// FieldError reports which input field failed validation and why.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match FieldError against common.ErrorInvalidRequest.
func (e *FieldError) Unwrap() error {
	return common.ErrorInvalidRequest
}

func fieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Mobile validates an E.164-like mobile number: "+" followed by 12 digits.
func Mobile(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return fieldError("mobile", "must be a + followed by 12 digits")
	}
	return nil
}

// Code validates a one-time verification code: exactly 6 characters.
func Code(code string) error {
	if len(code) != codeLength {
		return fieldError("code", "must be exactly 6 characters")
	}
	return nil
}

// Email validates an email address.
func Email(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fieldError("email", "must be a valid email address")
	}
	return nil
}

// Name validates a user's display name.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return fieldError("name", "must not be empty")
	}
	return nil
}

// NotEmpty validates a required free-text field.
func NotEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fieldError(field, "must not be empty")
	}
	return nil
}

// Positive validates a numeric field that must be greater than zero.
func Positive(field string, value float64) error {
	if value <= 0 {
		return fieldError(field, "must be positive")
	}
	return nil
}

// DateRange validates a stay interval: both ends set, departure after arrival.
func DateRange(arrival, departure time.Time) error {
	if arrival.IsZero() {
		return fieldError("arrivalDate", "must be set")
	}
	if departure.IsZero() {
		return fieldError("departureDate", "must be set")
	}
	if !departure.After(arrival) {
		return fieldError("departureDate", "must be after arrivalDate")
	}
	return nil
}

// Signup validates all signup inputs and returns the first failure.
func Signup(name, email, mobile string) error {
	if err := Name(name); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	return Mobile(mobile)
}
