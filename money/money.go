/*
Package money handles the formatted currency strings stored in shift records.

PURPOSE:
  Records persist monetary values as display strings ("$ 12,345"). This
  package is the single place that knows that format: it renders decimals
  into it and parses it back, so the fallback policy for bad data lives
  here and nowhere else.

FAIL-TO-ZERO POLICY:
  Stored records are semi-structured text. Aggregation must not abort on a
  malformed amount, so ParseOrZero substitutes zero and moves on. Callers
  that need to distinguish bad input use Parse directly.

SEE ALSO:
  - calendar/stats.go: Uses ParseOrZero during weekly aggregation
  - api/handlers.go: Uses Format when composing records
*/
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparsable is returned by Parse when the input is not a currency string.
var ErrUnparsable = errors.New("unparsable currency value")

// Format renders a decimal as the stored currency format: "$ 12,345".
// The value is rounded to whole units and grouped with commas.
func Format(d decimal.Decimal) string {
	rounded := d.Round(0)
	s := rounded.Abs().String()

	var b strings.Builder
	b.WriteString("$ ")
	if rounded.IsNegative() {
		b.WriteString("-")
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Parse reads a currency string back into a decimal. It strips the dollar
// sign, grouping commas and surrounding whitespace; anything left must be
// a plain number.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, ErrUnparsable
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrUnparsable
	}
	return d, nil
}

// ParseOrZero is Parse with the explicit failure-to-zero policy used by
// aggregation: a bad amount contributes nothing but never fails the caller.
func ParseOrZero(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
