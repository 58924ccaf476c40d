package output

import (
	"github.com/Lianag2018/calcauto-final-sub001/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as currency rounded to cents. All
// rounding happens here at the presentation boundary; the calculators carry
// full precision.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatRate formats an annual rate percentage with 2 decimals.
func FormatRate(rate decimal.Decimal) string { return money.FormatRate(rate) }
