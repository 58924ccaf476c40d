package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.567", "1234.57"},
		{"1234.564", "1234.56"},
		{"0.005", "0"},     // banker's rounding to even
		{"0.015", "0.02"},  // banker's rounding to even
		{"-99.999", "-100"},
		{"42", "42"},
	}
	for _, tt := range tests {
		in := decimal.RequireFromString(tt.in)
		want := decimal.RequireFromString(tt.want)
		assert.True(t, RoundCents(in).Equal(want), "RoundCents(%s) = %s, want %s", tt.in, RoundCents(in), tt.want)
	}
}

func TestMinMax(t *testing.T) {
	a := decimal.NewFromInt(5)
	b := decimal.NewFromInt(7)
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Min(b, a).Equal(a))
	assert.True(t, Max(a, b).Equal(b))
	assert.True(t, Max(a, a).Equal(a))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"567.284", "$567.28"},
		{"1234.567", "$1,234.57"},
		{"1234567.89", "$1,234,567.89"},
		{"-1234.5", "-$1,234.50"},
		{"999.999", "$1,000.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(decimal.RequireFromString(tt.in)), "Format(%s)", tt.in)
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "6.49%", FormatRate(decimal.NewFromFloat(6.49)))
	assert.Equal(t, "0.00%", FormatRate(decimal.Zero))
	assert.Equal(t, "5.00%", FormatRate(decimal.NewFromInt(5)))
}
