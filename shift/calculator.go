/*
Package shift computes worked duration and rule-based pay for a single shift.

PURPOSE:
  This is the calculation core of the system. Given an entry time, an exit
  time and the date they both fall on, it produces the worked duration
  (hours, minutes, decimal total) and the tiered payment amount. Both
  functions are pure: no I/O, no globals, all business constants injected
  through Rules.

KEY CONCEPTS IN THIS FILE (calculator.go):
  - Clock:  A wall-clock time of day (no date, no zone)
  - Result: The worked duration of one shift, in several shapes

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for pay math, no floating-point money
  2. Purity: same inputs, same outputs; configuration is a parameter
  3. One contract: every caller validates through this package, nowhere else

USAGE:
  entry, _ := shift.ParseClock("08:00")
  exit, _ := shift.ParseClock("16:30")
  res, err := shift.ComputeDuration(entry, exit, date, rules)
  pay := shift.ComputePayment(res.TotalHours, rules)

SEE ALSO:
  - payment.go: Rules and the tiered payment calculation
  - errors.go: Validation error taxonomy
*/
package shift

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK - Wall-clock time of day
// =============================================================================

// Clock is a time of day with minute precision. Shifts are entered as two
// Clocks on the same calendar date.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24-hour).
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On combines the clock with a calendar date.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}

// String formats as 24-hour "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Format12 formats as 12-hour "03:04 PM", the form records store.
func (c Clock) Format12(date time.Time) string {
	return c.On(date).Format("03:04 PM")
}

// =============================================================================
// RESULT - Worked duration of one shift
// =============================================================================

// Result is the worked duration split into the shapes callers need.
// Immutable once computed.
type Result struct {
	Hours      int             // whole hours
	Minutes    int             // remainder minutes, 0-59
	TotalHours decimal.Decimal // decimal total used for pay math
	Formatted  string          // "HH:MM"
}

// ComputeDuration converts an entry time, exit time and date into a worked
// duration. Seconds beyond the whole minute are truncated, not rounded.
//
// Fails with ErrInvalidSchedule when exit <= entry, ErrShiftTooLong when
// the duration exceeds rules.MaxShiftHours, and ErrNonPositiveDuration when
// the duration is not positive.
func ComputeDuration(entry, exit Clock, date time.Time, rules Rules) (Result, error) {
	entryAt := entry.On(date)
	exitAt := exit.On(date)

	if !exitAt.After(entryAt) {
		return Result{}, ErrInvalidSchedule
	}

	totalMinutes := int(exitAt.Sub(entryAt).Minutes())
	totalHours := decimal.NewFromInt(int64(totalMinutes)).Div(decimal.NewFromInt(60))

	if totalHours.GreaterThan(decimal.NewFromInt(int64(rules.MaxShiftHours))) {
		return Result{}, &TooLongError{Hours: totalHours, MaxHours: rules.MaxShiftHours}
	}
	if totalMinutes <= 0 {
		return Result{}, ErrNonPositiveDuration
	}

	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	return Result{
		Hours:      hours,
		Minutes:    minutes,
		TotalHours: totalHours,
		Formatted:  fmt.Sprintf("%02d:%02d", hours, minutes),
	}, nil
}

// ValidateDate rejects shifts dated after today. Only the calendar date is
// compared; the time of day of either argument is ignored.
func ValidateDate(date, today time.Time) error {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if d.After(t) {
		return ErrFutureDate
	}
	return nil
}
