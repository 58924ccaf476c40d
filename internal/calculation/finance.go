package calculation

import (
	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// monthlyAnnuityPayment computes the level payment for a principal amortized
// over term months at an annual percentage rate. A zero rate falls back to
// the straight-line principal/term split so the formula never divides by
// zero.
func monthlyAnnuityPayment(principal decimal.Decimal, annualRatePercent decimal.Decimal, term int) decimal.Decimal {
	if term <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(term))
	if annualRatePercent.IsZero() {
		return principal.Div(n)
	}
	r := annualRatePercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	// P * r * (1+r)^n / ((1+r)^n - 1)
	factor := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(factor).Div(factor.Sub(one))
}

// CalculateFinance computes the two-option finance comparison for a program.
// It returns nil when no program is selected or the price is not positive:
// partial input is normal in an interactive form and produces "no result",
// not an error.
func CalculateFinance(program *domain.Program, in domain.FinanceInputs) *domain.FinanceResult {
	if program == nil || !in.VehiclePrice.IsPositive() {
		return nil
	}

	// Taxable fees enter the financed amount at face value; no tax rate is
	// applied to them here.
	fees := in.AdminFee.Add(in.TireTax).Add(in.RegistrationFee)
	sellPrice := in.VehiclePrice.Add(in.AccessoriesTotal()).Sub(in.DealerDiscount)
	bonusCash := in.BonusCashInEffect(program)

	base := sellPrice.Add(fees).
		Sub(in.TradeInValue).Add(in.TradeInOwed).
		Sub(in.CashDown).Sub(bonusCash)

	result := &domain.FinanceResult{
		Term:      in.Term,
		Frequency: in.Frequency,
	}

	// Option 1 carries the consumer cash rebate; Option 2 never does.
	if rate, ok := RateForTerm(program.Option1Rates, in.Term); ok {
		result.Option1 = buildFinanceOption(base.Sub(program.ConsumerCash), rate, in.Term)
	}
	if program.HasOption2() {
		if rate, ok := RateForTerm(program.Option2Rates, in.Term); ok {
			result.Option2 = buildFinanceOption(base, rate, in.Term)
		}
	}

	switch {
	case result.Option1 != nil && result.Option2 != nil:
		if result.Option2.TotalCost.LessThan(result.Option1.TotalCost) {
			result.Best = domain.BestOption2
		} else {
			result.Best = domain.BestOption1
		}
		result.Savings = result.Option1.TotalCost.Sub(result.Option2.TotalCost).Abs()
	case result.Option1 != nil:
		result.Best = domain.BestOption1
	case result.Option2 != nil:
		result.Best = domain.BestOption2
	}

	return result
}

func buildFinanceOption(principal decimal.Decimal, rate decimal.Decimal, term int) *domain.FinanceOption {
	monthly := monthlyAnnuityPayment(principal, rate, term)
	return &domain.FinanceOption{
		Rate:            rate,
		Principal:       principal,
		MonthlyPayment:  monthly,
		BiweeklyPayment: monthly.Mul(domain.BiweeklyRatio),
		WeeklyPayment:   monthly.Mul(domain.WeeklyRatio),
		TotalCost:       monthly.Mul(decimal.NewFromInt(int64(term))),
	}
}
