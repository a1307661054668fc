/*
errors.go - Centralized error types for shift validation

PURPOSE:
  All validation errors in one place. The same contract is used by every
  caller (HTTP handlers, tests); no layer re-implements its own bounds
  checks with slightly different limits.

ERROR CATEGORIES:
  Validation errors: reject the input, re-prompt the user. Never fatal,
  never retried.

USAGE:
  Callers classify with errors.Is:

    if shift.IsValidationError(err) {
        // 400, show reason
    }

SEE ALSO:
  - calculator.go: Returns these errors
  - api/handlers.go: Maps them to HTTP status codes
*/
package shift

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidSchedule is returned when the exit time is not strictly
	// after the entry time. Overnight shifts are not supported.
	ErrInvalidSchedule = errors.New("exit time must be after entry time")

	// ErrShiftTooLong is returned when a shift exceeds the configured
	// maximum duration.
	ErrShiftTooLong = errors.New("shift exceeds maximum duration")

	// ErrNonPositiveDuration is returned when the computed duration is not
	// positive. Unreachable when the exit-after-entry check passed, but
	// checked independently because the two checks historically lived in
	// different call paths.
	ErrNonPositiveDuration = errors.New("shift duration must be positive")

	// ErrFutureDate is returned when a shift is dated after today.
	ErrFutureDate = errors.New("cannot register shifts for future dates")

	// ErrSurchargeNotAllowed is returned when a surcharge is not one of the
	// enumerated amounts.
	ErrSurchargeNotAllowed = errors.New("surcharge not in the allowed set")

	// ErrInvalidClock is returned when a wall-clock string is not HH:MM.
	ErrInvalidClock = errors.New("invalid clock time")
)

// TooLongError carries the offending duration alongside ErrShiftTooLong.
type TooLongError struct {
	Hours    decimal.Decimal
	MaxHours int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("shift of %s hours exceeds maximum of %d", e.Hours, e.MaxHours)
}

func (e *TooLongError) Unwrap() error { return ErrShiftTooLong }

// IsValidationError returns true if the error is a decline of user input,
// as opposed to an internal or store failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSchedule) ||
		errors.Is(err, ErrShiftTooLong) ||
		errors.Is(err, ErrNonPositiveDuration) ||
		errors.Is(err, ErrFutureDate) ||
		errors.Is(err, ErrSurchargeNotAllowed) ||
		errors.Is(err, ErrInvalidClock)
}
