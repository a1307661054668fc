package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turno/shift-engine/config"
	"github.com/turno/shift-engine/shift"
)

func TestMustLoad_Defaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, int64(15500), cfg.RatePerHour)
	assert.Equal(t, int64(100000), cfg.Bonus6h)
	assert.Equal(t, 1, cfg.ToleranceMinutes)
	assert.Equal(t, 16, cfg.MaxShiftHours)
	assert.Len(t, cfg.Surcharges, 9)
}

func TestMustLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RATE_PER_HOUR", "20000")
	t.Setenv("SURCHARGES", "0,1000")

	cfg := config.MustLoad()
	assert.Equal(t, int64(20000), cfg.RatePerHour)
	assert.Equal(t, []int64{0, 1000}, cfg.Surcharges)
}

func TestRules_MatchesDefaults(t *testing.T) {
	cfg := config.MustLoad()
	rules := cfg.Rules()

	defaults := shift.DefaultRules()
	assert.True(t, rules.RatePerHour.Equal(defaults.RatePerHour))
	assert.True(t, rules.Bonus6h.Equal(defaults.Bonus6h))
	assert.Equal(t, defaults.ToleranceMinutes, rules.ToleranceMinutes)
	assert.Equal(t, defaults.MaxShiftHours, rules.MaxShiftHours)
	require.Len(t, rules.Surcharges, len(defaults.Surcharges))
	assert.True(t, rules.ValidSurcharge(decimal.NewFromInt(25000)))
}
