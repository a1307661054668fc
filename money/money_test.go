package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turno/shift-engine/money"
)

func TestFormat_GroupsThousands(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$ 0"},
		{500, "$ 500"},
		{12345, "$ 12,345"},
		{131000, "$ 131,000"},
		{1234567, "$ 1,234,567"},
		{100000, "$ 100,000"},
	}
	for _, tc := range cases {
		got := money.Format(decimal.NewFromFloat(tc.in))
		assert.Equal(t, tc.want, got, "formatting %v", tc.in)
	}
}

func TestFormat_RoundsToWholeUnits(t *testing.T) {
	assert.Equal(t, "$ 46,500", money.Format(decimal.NewFromFloat(46500.4)))
	assert.Equal(t, "$ 46,501", money.Format(decimal.NewFromFloat(46500.5)))
}

func TestParse_ReadsStoredFormat(t *testing.T) {
	d, err := money.Parse("$ 12,345")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(12345)), "got %s", d)
}

func TestParse_PlainNumber(t *testing.T) {
	d, err := money.Parse("5000")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(5000)))
}

func TestParse_RejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "$", "N/A", "$ twelve"} {
		_, err := money.Parse(in)
		assert.ErrorIs(t, err, money.ErrUnparsable, "input %q", in)
	}
}

func TestParseOrZero_FallsBackToZero(t *testing.T) {
	assert.True(t, money.ParseOrZero("N/A").IsZero())
	assert.True(t, money.ParseOrZero("$ 1,000").Equal(decimal.NewFromInt(1000)))
}

func TestRoundTrip(t *testing.T) {
	// GIVEN: A computed pay amount
	// WHEN: Formatted for storage and parsed back
	// THEN: The value survives exactly
	orig := decimal.NewFromInt(131000)
	got, err := money.Parse(money.Format(orig))
	require.NoError(t, err)
	assert.True(t, got.Equal(orig))
}
