package domain

import "github.com/shopspring/decimal"

// TaxConfig holds the sales tax rates applied to lease payments. The
// defaults are the Québec TPS/TVQ rates; other jurisdictions can inject
// their own values without code changes.
type TaxConfig struct {
	TPSRate decimal.Decimal `yaml:"tps_rate" json:"tps_rate"`
	TVQRate decimal.Decimal `yaml:"tvq_rate" json:"tvq_rate"`
}

// Combined returns the sum of both tax components.
func (tc TaxConfig) Combined() decimal.Decimal {
	return tc.TPSRate.Add(tc.TVQRate)
}

// DefaultTaxConfig returns the Québec rates: TPS 5%, TVQ 9.975%.
func DefaultTaxConfig() TaxConfig {
	return TaxConfig{
		TPSRate: decimal.NewFromFloat(0.05),
		TVQRate: decimal.NewFromFloat(0.09975),
	}
}

// Admissible terms and mileage tiers. Rate and residual tables are sparse
// within these sets; a term outside them is rejected at input validation.
var (
	FinanceTerms = []int{36, 48, 60, 72, 84, 96}
	LeaseTerms   = []int{24, 36, 39, 48, 51, 60}
	MileageTiers = []int{12000, 18000, 24000}
)

// DefaultMileageTier is the tier residual tables are authored against.
const DefaultMileageTier = 24000

// Flat period-conversion ratios. These follow the industry quoting
// convention of 26 biweekly and 52 weekly payments per 12 monthly ones and
// are intentionally not calendar-exact.
var (
	BiweeklyRatio = decimal.NewFromInt(12).Div(decimal.NewFromInt(26))
	WeeklyRatio   = decimal.NewFromInt(12).Div(decimal.NewFromInt(52))
)

// ContainsTerm reports whether term is in the admissible set.
func ContainsTerm(set []int, term int) bool {
	for _, t := range set {
		if t == term {
			return true
		}
	}
	return false
}
