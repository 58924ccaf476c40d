package calculation

import (
	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"github.com/Lianag2018/calcauto-final-sub001/pkg/money"
	"github.com/shopspring/decimal"
)

// leaseContext hoists the quote inputs that are identical for every cell of
// the analysis grid, so the exhaustive search never re-derives them.
type leaseContext struct {
	tax        domain.TaxConfig
	sellPrice  decimal.Decimal // price + accessories - dealer discount
	adminFee   decimal.Decimal
	carriedAdj decimal.Decimal // carried balance after the sign-dependent gross-up
	tradeValue decimal.Decimal
	tradeOwed  decimal.Decimal
	cashDown   decimal.Decimal
	bonusCash  decimal.Decimal
	msrp       decimal.Decimal // basis for residual value
	residual   *domain.ResidualVehicle
	rates      *domain.LeaseRateEntry
	mileage    domain.MileageTable
}

func newLeaseContext(program *domain.Program, in domain.LeaseInputs, ref *domain.LeaseReference, tax domain.TaxConfig) (*leaseContext, bool) {
	if program == nil || !in.VehiclePrice.IsPositive() || ref == nil {
		return nil, false
	}
	residual, ok := MatchResidualVehicle(program, in.BodyStyle, ref.Residuals)
	if !ok {
		return nil, false
	}
	rates, ok := MatchLeaseRates(program, ref.LeaseRates)
	if !ok {
		return nil, false
	}

	// A negative carried balance is debt still owed on the incoming vehicle
	// and is financed tax-in: gross it up by the combined rate. A positive
	// balance is added as-is. Both increase the financed amount.
	carried := in.CarriedBalance
	if carried.IsNegative() {
		carried = carried.Abs().Mul(one.Add(tax.Combined()))
	}

	return &leaseContext{
		tax:        tax,
		sellPrice:  in.VehiclePrice.Add(in.AccessoriesTotal()).Sub(in.DealerDiscount),
		adminFee:   in.AdminFee,
		carriedAdj: carried,
		tradeValue: in.TradeInValue,
		tradeOwed:  in.TradeInOwed,
		cashDown:   in.CashDown,
		bonusCash:  in.BonusCashInEffect(program),
		msrp:       in.ResidualBasis(),
		residual:   residual,
		rates:      rates,
		mileage:    ref.Mileage,
	}, true
}

// rateFor returns the rate table for a variant; lease cash applies only to
// the standard track.
func (lc *leaseContext) rateFor(variant domain.LeaseVariant) (domain.RateTable, decimal.Decimal) {
	if variant == domain.LeaseStandard {
		return lc.rates.StandardRates, lc.rates.LeaseCash
	}
	return lc.rates.AlternativeRates, decimal.Zero
}

// computeOption evaluates one variant at one term/mileage selection.
// Returns nil when the variant has no rate at the term or the vehicle has
// no residual there, which marks the branch unavailable rather than zero.
func (lc *leaseContext) computeOption(variant domain.LeaseVariant, term, kmPerYear int) *domain.LeaseOption {
	basePct, ok := lc.residual.ResidualPercent(term)
	if !ok {
		return nil
	}
	table, leaseCash := lc.rateFor(variant)
	rate, ok := RateForTerm(table, term)
	if !ok {
		return nil
	}

	adjustedPct := basePct.Add(lc.mileage.Delta(kmPerYear, term))
	residualValue := lc.msrp.Mul(adjustedPct).Div(decimal.NewFromInt(100))

	capCost := lc.sellPrice.Add(lc.adminFee).Sub(leaseCash)
	netCapCost := capCost.Add(lc.carriedAdj).
		Add(lc.tradeOwed).Sub(lc.tradeValue).
		Sub(lc.cashDown).Sub(lc.bonusCash)

	n := decimal.NewFromInt(int64(term))
	var beforeTax decimal.Decimal
	if rate.IsZero() {
		beforeTax = netCapCost.Sub(residualValue).Div(n)
	} else {
		// Arrears payment from the standard amortizing-lease formula, then
		// shifted to advance timing by dividing by (1 + monthly rate).
		r := rate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
		factor := one.Add(r).Pow(n)
		arrears := netCapCost.Sub(residualValue.Div(factor)).Mul(r).Div(one.Sub(one.Div(factor)))
		beforeTax = arrears.Div(one.Add(r))
	}

	// Taxes are charged on each payment, never capitalized.
	tps := beforeTax.Mul(lc.tax.TPSRate)
	tvq := beforeTax.Mul(lc.tax.TVQRate)
	taxTotal := tps.Add(tvq)

	// Trade-in tax credit is capped by the payment's own tax; the excess is
	// reported as lost, never carried negative.
	tradeCredit := decimal.Zero
	lostCredit := decimal.Zero
	if lc.tradeValue.IsPositive() {
		potential := lc.tradeValue.Div(n).Mul(lc.tax.Combined())
		tradeCredit = money.Min(potential, taxTotal)
		lostCredit = potential.Sub(tradeCredit)
	}

	monthly := beforeTax.Add(taxTotal).Sub(tradeCredit)

	// Finance charge = payment beyond the straight depreciation portion.
	depreciation := netCapCost.Sub(residualValue).Div(n)
	costOfBorrowing := beforeTax.Sub(depreciation).Mul(n)

	return &domain.LeaseOption{
		Rate:             rate,
		ResidualPercent:  adjustedPct,
		ResidualValue:    residualValue,
		NetCapCost:       netCapCost,
		PaymentBeforeTax: beforeTax,
		TPS:              tps,
		TVQ:              tvq,
		TradeCredit:      tradeCredit,
		LostCredit:       lostCredit,
		MonthlyPayment:   monthly,
		BiweeklyPayment:  monthly.Mul(domain.BiweeklyRatio),
		WeeklyPayment:    monthly.Mul(domain.WeeklyRatio),
		TotalCost:        monthly.Mul(n),
		CostOfBorrowing:  costOfBorrowing,
	}
}

// CalculateLease computes the full lease quote for a program: both rate
// variants at the selected term and mileage tier, plus the exhaustive
// term x mileage x variant grid and its globally cheapest configuration.
// Returns nil when no program is selected, the price is not positive, or
// the vehicle matches no residual/rate row.
func CalculateLease(program *domain.Program, in domain.LeaseInputs, ref *domain.LeaseReference, tax domain.TaxConfig) *domain.LeaseResult {
	lc, ok := newLeaseContext(program, in, ref, tax)
	if !ok {
		return nil
	}

	result := &domain.LeaseResult{
		Term:        in.Term,
		KMPerYear:   in.KMPerYear,
		Standard:    lc.computeOption(domain.LeaseStandard, in.Term, in.KMPerYear),
		Alternative: lc.computeOption(domain.LeaseAlternative, in.Term, in.KMPerYear),
	}

	switch {
	case result.Standard != nil && result.Alternative != nil:
		if result.Alternative.TotalCost.LessThan(result.Standard.TotalCost) {
			result.Best = domain.LeaseAlternative
		} else {
			result.Best = domain.LeaseStandard
		}
		result.Savings = result.Standard.TotalCost.Sub(result.Alternative.TotalCost).Abs()
	case result.Standard != nil:
		result.Best = domain.LeaseStandard
	case result.Alternative != nil:
		result.Best = domain.LeaseAlternative
	}

	result.Grid, result.BestCell = lc.analyzeGrid()
	return result
}

// analyzeGrid evaluates every admissible mileage x term pair for both
// variants and tracks the single minimum monthly payment across the grid.
// Cells whose variant has no rate or residual at a term are simply absent.
func (lc *leaseContext) analyzeGrid() ([]domain.LeaseGridCell, *domain.LeaseGridCell) {
	var grid []domain.LeaseGridCell
	bestIdx := -1

	for _, km := range domain.MileageTiers {
		for _, term := range domain.LeaseTerms {
			for _, variant := range []domain.LeaseVariant{domain.LeaseStandard, domain.LeaseAlternative} {
				option := lc.computeOption(variant, term, km)
				if option == nil {
					continue
				}
				grid = append(grid, domain.LeaseGridCell{
					Term:      term,
					KMPerYear: km,
					Variant:   variant,
					Option:    *option,
				})
				i := len(grid) - 1
				if bestIdx < 0 || grid[i].Option.MonthlyPayment.LessThan(grid[bestIdx].Option.MonthlyPayment) {
					bestIdx = i
				}
			}
		}
	}

	if bestIdx < 0 {
		return grid, nil
	}
	best := grid[bestIdx]
	return grid, &best
}
