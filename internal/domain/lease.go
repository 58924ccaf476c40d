package domain

import (
	"github.com/shopspring/decimal"
)

// ResidualVehicle is one row of the residual-percentage reference table,
// keyed by vehicle identity. Residuals maps a lease term in months to the
// base residual percentage of MSRP at the default 24 000 km/year tier.
type ResidualVehicle struct {
	Brand     string                  `yaml:"brand" json:"brand"`
	Model     string                  `yaml:"model" json:"model"`
	Trim      string                  `yaml:"trim,omitempty" json:"trim,omitempty"`
	BodyStyle string                  `yaml:"body_style,omitempty" json:"body_style,omitempty"`
	Residuals map[int]decimal.Decimal `yaml:"residuals" json:"residuals"`
}

// ResidualPercent returns the base residual percentage for a term. A zero or
// missing residual means the vehicle has no lease program at that term.
func (rv *ResidualVehicle) ResidualPercent(term int) (decimal.Decimal, bool) {
	if rv == nil || rv.Residuals == nil {
		return decimal.Decimal{}, false
	}
	pct, ok := rv.Residuals[term]
	if !ok || pct.IsZero() {
		return decimal.Decimal{}, false
	}
	return pct, true
}

// LeaseRateEntry is one row of the lease-rate reference table. The standard
// track pairs with the flat LeaseCash incentive; the alternative track never
// carries lease cash.
type LeaseRateEntry struct {
	Brand            string          `yaml:"brand" json:"brand"`
	Model            string          `yaml:"model" json:"model"`
	Trim             string          `yaml:"trim,omitempty" json:"trim,omitempty"`
	StandardRates    RateTable       `yaml:"standard_rates" json:"standard_rates"`
	AlternativeRates RateTable       `yaml:"alternative_rates,omitempty" json:"alternative_rates,omitempty"`
	LeaseCash        decimal.Decimal `yaml:"lease_cash" json:"lease_cash"`
}

// MileageKey identifies a mileage-adjustment cell.
type MileageKey struct {
	KMPerYear int `yaml:"km_per_year" json:"km_per_year"`
	Term      int `yaml:"term" json:"term"`
}

// MileageTable maps (mileage tier, term) to a residual-percentage delta
// relative to the default 24 000 km/year tier.
type MileageTable map[MileageKey]decimal.Decimal

// Delta returns the residual adjustment for a tier and term. The default
// tier, and any absent cell, adjusts by zero.
func (mt MileageTable) Delta(kmPerYear, term int) decimal.Decimal {
	if kmPerYear == DefaultMileageTier || mt == nil {
		return decimal.Zero
	}
	return mt[MileageKey{KMPerYear: kmPerYear, Term: term}]
}

// LeaseReference bundles the external reference tables consumed by the lease
// calculator. All three are read-only and may be sparse.
type LeaseReference struct {
	Residuals  []ResidualVehicle `yaml:"residuals" json:"residuals"`
	LeaseRates []LeaseRateEntry  `yaml:"lease_rates" json:"lease_rates"`
	Mileage    MileageTable      `yaml:"mileage" json:"mileage"`
}

// LeaseInputs carries the user-adjustable inputs of a lease quote.
// CarriedBalance is signed: negative means debt still owed (grossed up by
// the combined tax rate before being financed), positive is added as-is.
type LeaseInputs struct {
	VehiclePrice      decimal.Decimal  `yaml:"vehicle_price" json:"vehicle_price"`
	BodyStyle         string           `yaml:"body_style,omitempty" json:"body_style,omitempty"` // from inventory, refines residual matching
	MSRPForResidual   decimal.Decimal  `yaml:"msrp_for_residual,omitempty" json:"msrp_for_residual,omitempty"` // defaults to VehiclePrice
	CarriedBalance    decimal.Decimal  `yaml:"carried_balance" json:"carried_balance"`
	Term              int              `yaml:"term" json:"term"`
	KMPerYear         int              `yaml:"km_per_year" json:"km_per_year"`
	BonusCashOverride *decimal.Decimal `yaml:"bonus_cash_override,omitempty" json:"bonus_cash_override,omitempty"`
	CashDown          decimal.Decimal  `yaml:"cash_down" json:"cash_down"`
	AdminFee          decimal.Decimal  `yaml:"admin_fee" json:"admin_fee"`
	Accessories       []Accessory      `yaml:"accessories,omitempty" json:"accessories,omitempty"`
	TradeInValue      decimal.Decimal  `yaml:"trade_in_value" json:"trade_in_value"`
	TradeInOwed       decimal.Decimal  `yaml:"trade_in_owed" json:"trade_in_owed"`
	DealerDiscount    decimal.Decimal  `yaml:"dealer_discount" json:"dealer_discount"`
}

// ResidualBasis returns the MSRP used for residual value, defaulting to the
// vehicle price when unset.
func (in *LeaseInputs) ResidualBasis() decimal.Decimal {
	if in.MSRPForResidual.IsPositive() {
		return in.MSRPForResidual
	}
	return in.VehiclePrice
}

// AccessoriesTotal sums the accessory prices.
func (in *LeaseInputs) AccessoriesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range in.Accessories {
		total = total.Add(a.Price)
	}
	return total
}

// BonusCashInEffect resolves the bonus cash applied to the quote.
func (in *LeaseInputs) BonusCashInEffect(program *Program) decimal.Decimal {
	if in.BonusCashOverride != nil {
		return *in.BonusCashOverride
	}
	if program == nil {
		return decimal.Zero
	}
	return program.BonusCash
}

// LeaseVariant names a lease rate track.
type LeaseVariant string

const (
	LeaseStandard    LeaseVariant = "standard"    // standard rate with lease cash
	LeaseAlternative LeaseVariant = "alternative" // reduced/alternative rate, no lease cash
)

// LeaseOption holds the computed figures for one lease variant at one
// term/mileage selection.
type LeaseOption struct {
	Rate             decimal.Decimal `json:"rate"`
	ResidualPercent  decimal.Decimal `json:"residual_percent"` // after mileage adjustment
	ResidualValue    decimal.Decimal `json:"residual_value"`
	NetCapCost       decimal.Decimal `json:"net_cap_cost"`
	PaymentBeforeTax decimal.Decimal `json:"payment_before_tax"` // monthly, advance timing
	TPS              decimal.Decimal `json:"tps"`
	TVQ              decimal.Decimal `json:"tvq"`
	TradeCredit      decimal.Decimal `json:"trade_credit"` // monthly tax credit from trade-in
	LostCredit       decimal.Decimal `json:"lost_credit"`  // potential credit beyond tax headroom
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	BiweeklyPayment  decimal.Decimal `json:"biweekly_payment"`
	WeeklyPayment    decimal.Decimal `json:"weekly_payment"`
	TotalCost        decimal.Decimal `json:"total_cost"`        // monthly payment x term
	CostOfBorrowing  decimal.Decimal `json:"cost_of_borrowing"` // finance charge over the full term
}

// LeaseGridCell is one entry of the exhaustive term x mileage x variant
// analysis grid.
type LeaseGridCell struct {
	Term      int          `json:"term"`
	KMPerYear int          `json:"km_per_year"`
	Variant   LeaseVariant `json:"variant"`
	Option    LeaseOption  `json:"option"`
}

// LeaseResult is the full lease quote: both variants at the selected
// term/mileage, the cheaper of the two, and the exhaustive analysis grid
// with its globally cheapest configuration. Nil variants mean no rate (or no
// residual) was available, never a zero payment.
type LeaseResult struct {
	Term        int             `json:"term"`
	KMPerYear   int             `json:"km_per_year"`
	Standard    *LeaseOption    `json:"standard,omitempty"`
	Alternative *LeaseOption    `json:"alternative,omitempty"`
	Best        LeaseVariant    `json:"best,omitempty"`
	Savings     decimal.Decimal `json:"savings"`
	Grid        []LeaseGridCell `json:"grid,omitempty"`
	BestCell    *LeaseGridCell  `json:"best_cell,omitempty"`
}

// BestVariant returns the option named by Best, or nil when neither variant
// is available.
func (r *LeaseResult) BestVariant() *LeaseOption {
	switch r.Best {
	case LeaseStandard:
		return r.Standard
	case LeaseAlternative:
		return r.Alternative
	}
	return nil
}
