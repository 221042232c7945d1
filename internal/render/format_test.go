package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToFixed(t *testing.T) {
	tests := []struct {
		in     float64
		digits int
		want   string
	}{
		{7, 1, "7.0"},
		{12.3456, 2, "12.35"},
		{0.25, 1, "0.3"},
		{2.5, 0, "3"},
		{1.005, 2, "1.00"},
		{0.001, 1, "0.0"},
		{-1.25, 1, "-1.3"},
		{1803.2712, 1, "1803.3"},
		{324.5888, 2, "324.59"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToFixed(tt.in, tt.digits), "ToFixed(%v, %d)", tt.in, tt.digits)
	}
}

func TestHoursAndCurrency(t *testing.T) {
	assert.Equal(t, "7.0h", Hours(7))
	assert.Equal(t, "1803.3h", Hours(1803.27))
	assert.Equal(t, "$12.35", Currency(12.3456))
	assert.Equal(t, "$0.00", Currency(0))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "5000", Number(5000))
	assert.Equal(t, "1234.56", Number(1234.56))
	assert.Equal(t, "17.4", Number(17.4))
	assert.Equal(t, "0", Number(0))
	assert.Equal(t, "$500", RawCurrency(500))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Yes", YesNo(true))
	assert.Equal(t, "No", YesNo(false))
}

func TestRatio(t *testing.T) {
	p := Ratio(47, 50)
	assert.True(t, p.Valid)
	assert.Equal(t, "94.0", p.Text)
	assert.Equal(t, "94.0%", p.Label())
	assert.Equal(t, "94.0%", p.Width())

	p = Ratio(1234.56, 5000)
	assert.Equal(t, "24.7", p.Text)
	assert.Equal(t, 24.7, p.Value)
}

func TestRatio_ZeroDenominator(t *testing.T) {
	p := Ratio(3, 0)

	assert.False(t, p.Valid)
	assert.Equal(t, NotAvailable, p.Label())
	assert.Equal(t, "0%", p.Width())
}

func TestBudgetColor(t *testing.T) {
	assert.Equal(t, ColorUnderBudget, BudgetColor(Ratio(4000, 5000)), "exactly 80 stays green")
	assert.Equal(t, ColorUnderBudget, BudgetColor(Ratio(4001, 5000)), "80.02 rounds to 80.0")
	assert.Equal(t, ColorOverBudget, BudgetColor(Ratio(4005, 5000)))
	assert.Equal(t, ColorOverBudget, BudgetColor(Ratio(6000, 5000)))
	assert.Equal(t, ColorUnderBudget, BudgetColor(Ratio(100, 0)))
}

func TestLocalDateTime(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		name string
		in   string
		loc  *time.Location
		want string
	}{
		{"naive iso", "2026-10-19T14:05:09.123456", time.UTC, "10/19/2026, 2:05:09 PM"},
		{"naive iso is wall clock in loc", "2026-10-19T14:05:09", berlin, "10/19/2026, 2:05:09 PM"},
		{"utc designator", "2026-10-19T14:05:09Z", berlin, "10/19/2026, 4:05:09 PM"},
		{"explicit offset", "2026-10-19T14:05:09+02:00", time.UTC, "10/19/2026, 12:05:09 PM"},
		{"date only is utc", "2026-01-02", time.UTC, "1/2/2026, 12:00:00 AM"},
		{"garbage", "yesterday", time.UTC, InvalidDate},
		{"empty", "", time.UTC, InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalDateTime(tt.in, tt.loc))
		})
	}
}

func TestNumber_ExponentForms(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1e21, "1e+21"},
		{1.5e21, "1.5e+21"},
		{-2.5e22, "-2.5e+22"},
		{1e20, "100000000000000000000"},
		{123456789012345680000, "123456789012345680000"},
		{0.000001, "0.000001"},
		{0.0000015, "0.0000015"},
		{1e-7, "1e-7"},
		{-1.5e-7, "-1.5e-7"},
		{0.5, "0.5"},
		{1234.56, "1234.56"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in), "Number(%v)", tt.in)
	}
}

func TestToFixed_LargeValuesUseExponentForm(t *testing.T) {
	assert.Equal(t, "1e+21", ToFixed(1e21, 2))
	assert.Equal(t, "-1e+21", ToFixed(-1e21, 1))
	assert.Equal(t, "$1.2e+21", Currency(1.2e21))
	assert.Equal(t, "0.0", ToFixed(1e-7, 1))
}
