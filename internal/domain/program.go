package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RateTable maps a financing term in months to an annual interest rate
// percentage (e.g. 4.99 means 4.99%). Programs publish sparse tables: a
// missing term means the option is not offered at that term, which is a
// normal business condition, never an error.
type RateTable map[int]decimal.Decimal

// Rate returns the rate at the exact term and whether it exists. A missing
// entry must never be read as a zero rate.
func (t RateTable) Rate(term int) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Decimal{}, false
	}
	rate, ok := t[term]
	return rate, ok
}

// Terms returns the terms present in the table in ascending order.
func (t RateTable) Terms() []int {
	terms := make([]int, 0, len(t))
	for term := range t {
		terms = append(terms, term)
	}
	sort.Ints(terms)
	return terms
}

// Program represents a manufacturer incentive program for a specific vehicle.
// Option 1 pairs the consumer cash rebate with the standard rate track;
// Option 2 drops the rebate in exchange for a reduced rate track. A program
// without a second rate track never offers Option 2.
type Program struct {
	Brand        string          `yaml:"brand" json:"brand"`
	Model        string          `yaml:"model" json:"model"`
	Trim         string          `yaml:"trim,omitempty" json:"trim,omitempty"`
	Year         int             `yaml:"year,omitempty" json:"year,omitempty"`
	ConsumerCash decimal.Decimal `yaml:"consumer_cash" json:"consumer_cash"` // pre-tax rebate, Option 1 only
	BonusCash    decimal.Decimal `yaml:"bonus_cash" json:"bonus_cash"`       // post-tax rebate, either option
	Option1Rates RateTable       `yaml:"option1_rates" json:"option1_rates"`
	Option2Rates RateTable       `yaml:"option2_rates,omitempty" json:"option2_rates,omitempty"`
}

// HasOption2 reports whether the program carries a secondary rate track.
func (p *Program) HasOption2() bool {
	return p != nil && len(p.Option2Rates) > 0
}

// PaymentFrequency selects how often payments are made. Biweekly and weekly
// payments are derived from the monthly payment using the flat 12/26 and
// 12/52 quoting conventions.
type PaymentFrequency string

const (
	FrequencyMonthly  PaymentFrequency = "monthly"
	FrequencyBiweekly PaymentFrequency = "biweekly"
	FrequencyWeekly   PaymentFrequency = "weekly"
)

// Valid reports whether the frequency is one of the supported values.
func (f PaymentFrequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyBiweekly, FrequencyWeekly:
		return true
	}
	return false
}

// Accessory is a dealer-installed add-on whose price is added to the vehicle
// price before tax.
type Accessory struct {
	Name  string          `yaml:"name,omitempty" json:"name,omitempty"`
	Price decimal.Decimal `yaml:"price" json:"price"`
}

// FinanceInputs carries the user-adjustable inputs of a finance quote.
type FinanceInputs struct {
	VehiclePrice      decimal.Decimal  `yaml:"vehicle_price" json:"vehicle_price"`
	Term              int              `yaml:"term" json:"term"`
	Frequency         PaymentFrequency `yaml:"frequency" json:"frequency"`
	BonusCashOverride *decimal.Decimal `yaml:"bonus_cash_override,omitempty" json:"bonus_cash_override,omitempty"`
	CashDown          decimal.Decimal  `yaml:"cash_down" json:"cash_down"` // tax-included
	AdminFee          decimal.Decimal  `yaml:"admin_fee" json:"admin_fee"`
	TireTax           decimal.Decimal  `yaml:"tire_tax" json:"tire_tax"`
	RegistrationFee   decimal.Decimal  `yaml:"registration_fee" json:"registration_fee"`
	Accessories       []Accessory      `yaml:"accessories,omitempty" json:"accessories,omitempty"`
	TradeInValue      decimal.Decimal  `yaml:"trade_in_value" json:"trade_in_value"`
	TradeInOwed       decimal.Decimal  `yaml:"trade_in_owed" json:"trade_in_owed"`
	DealerDiscount    decimal.Decimal  `yaml:"dealer_discount" json:"dealer_discount"` // pre-tax reduction
}

// AccessoriesTotal sums the accessory prices.
func (in *FinanceInputs) AccessoriesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range in.Accessories {
		total = total.Add(a.Price)
	}
	return total
}

// BonusCashInEffect resolves the bonus cash applied to the quote: the user
// override when provided, otherwise the program default.
func (in *FinanceInputs) BonusCashInEffect(program *Program) decimal.Decimal {
	if in.BonusCashOverride != nil {
		return *in.BonusCashOverride
	}
	if program == nil {
		return decimal.Zero
	}
	return program.BonusCash
}

// FinanceOption holds the computed figures for one financing option.
type FinanceOption struct {
	Rate            decimal.Decimal `json:"rate"`
	Principal       decimal.Decimal `json:"principal"`
	MonthlyPayment  decimal.Decimal `json:"monthly_payment"`
	BiweeklyPayment decimal.Decimal `json:"biweekly_payment"`
	WeeklyPayment   decimal.Decimal `json:"weekly_payment"`
	TotalCost       decimal.Decimal `json:"total_cost"` // monthly payment x term
}

// BestFinanceOption labels which financing option carries the lower total
// cost.
type BestFinanceOption string

const (
	BestOption1    BestFinanceOption = "option1"
	BestOption2    BestFinanceOption = "option2"
	BestOptionNone BestFinanceOption = ""
)

// FinanceResult is the side-by-side comparison emitted by the finance
// calculator. A nil option means that option could not be computed (missing
// rate track or no rate at the selected term), which is distinct from an
// option with zero figures.
type FinanceResult struct {
	Term      int               `json:"term"`
	Frequency PaymentFrequency  `json:"frequency"`
	Option1   *FinanceOption    `json:"option1,omitempty"`
	Option2   *FinanceOption    `json:"option2,omitempty"`
	Best      BestFinanceOption `json:"best"`
	Savings   decimal.Decimal   `json:"savings"`
}

// BestOption returns the option named by Best, or nil when neither option is
// available.
func (r *FinanceResult) BestOption() *FinanceOption {
	switch r.Best {
	case BestOption1:
		return r.Option1
	case BestOption2:
		return r.Option2
	}
	return nil
}
