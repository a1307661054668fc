/*
payment.go - Tiered payment rule

PURPOSE:
  Turns a worked-hours total into a base pay amount. Three tiers around the
  6-hour mark with a symmetric tolerance window:

    total < 6 - tol          hourly pay            (normal_hours)
    |total - 6| <= tol       flat 6-hour bonus     (six_hour_bonus)
    total > 6 + tol          bonus + hourly extra  (overtime)

  The user-selected surcharge is flat and added unconditionally on top of
  the base, whatever the tier.

CONFIGURATION:
  All constants live in Rules and are supplied by the caller. Nothing in
  this file reads process-wide state.

SEE ALSO:
  - calculator.go: Produces the TotalHours input
  - config/config.go: Builds Rules from the service configuration
*/
package shift

import "github.com/shopspring/decimal"

// =============================================================================
// RULES - Injected business constants
// =============================================================================

// Rules holds the business constants for duration and payment calculation.
type Rules struct {
	RatePerHour      decimal.Decimal
	Bonus6h          decimal.Decimal
	ToleranceMinutes int
	MaxShiftHours    int

	// Surcharges is the enumerated set of flat amounts a user may pick.
	Surcharges []decimal.Decimal
}

// DefaultRules returns the stock constants: $15,500/hour, $100,000 bonus,
// 1 minute tolerance, 16 hour maximum, surcharges 0 to 40,000 in 5,000 steps.
func DefaultRules() Rules {
	surcharges := make([]decimal.Decimal, 0, 9)
	for v := int64(0); v <= 40000; v += 5000 {
		surcharges = append(surcharges, decimal.NewFromInt(v))
	}
	return Rules{
		RatePerHour:      decimal.NewFromInt(15500),
		Bonus6h:          decimal.NewFromInt(100000),
		ToleranceMinutes: 1,
		MaxShiftHours:    16,
		Surcharges:       surcharges,
	}
}

// ValidSurcharge reports whether the amount is one of the enumerated options.
func (r Rules) ValidSurcharge(amount decimal.Decimal) bool {
	for _, s := range r.Surcharges {
		if s.Equal(amount) {
			return true
		}
	}
	return false
}

// =============================================================================
// PAYMENT
// =============================================================================

// Kind tags which tier of the payment rule applied.
type Kind string

const (
	KindNormalHours  Kind = "normal_hours"
	KindSixHourBonus Kind = "six_hour_bonus"
	KindOvertime     Kind = "overtime"
)

// Payment is the computed base pay for a shift.
type Payment struct {
	Base decimal.Decimal
	Kind Kind
}

// TotalWith adds the user-selected flat surcharge onto the base pay.
func (p Payment) TotalWith(surcharge decimal.Decimal) decimal.Decimal {
	return p.Base.Add(surcharge)
}

var six = decimal.NewFromInt(6)

// ComputePayment applies the tiered rule to a worked-hours total. The
// tiers are evaluated in order; the tolerance window is symmetric around
// six hours. Pure function.
func ComputePayment(totalHours decimal.Decimal, rules Rules) Payment {
	tolerance := decimal.NewFromInt(int64(rules.ToleranceMinutes)).Div(decimal.NewFromInt(60))

	switch {
	case totalHours.LessThan(six.Sub(tolerance)):
		return Payment{
			Base: totalHours.Mul(rules.RatePerHour),
			Kind: KindNormalHours,
		}
	case totalHours.Sub(six).Abs().LessThanOrEqual(tolerance):
		return Payment{
			Base: rules.Bonus6h,
			Kind: KindSixHourBonus,
		}
	default:
		extra := totalHours.Sub(six)
		return Payment{
			Base: rules.Bonus6h.Add(extra.Mul(rules.RatePerHour)),
			Kind: KindOvertime,
		}
	}
}
