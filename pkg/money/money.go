// Package money provides small helpers for currency amounts kept as
// decimal.Decimal. Amounts are carried at full precision through the
// calculators; rounding to cents happens only at presentation boundaries.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundCents rounds an amount to two decimal places (banker's rounding).
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Format renders an amount as a dollar string with thousands separators,
// e.g. "$1,234.57". Negative amounts are rendered as "-$1,234.57".
func Format(d decimal.Decimal) string {
	s := RoundCents(d).Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatRate renders an annual rate percentage, e.g. "6.49%".
func FormatRate(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
