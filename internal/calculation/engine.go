package calculation

import (
	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
)

// QuoteEngine runs the finance and lease calculators under one tax/convention
// configuration. The engine holds no mutable state of its own: every call is
// a pure function of its arguments, so callers own any memoization or
// debouncing and may discard stale results freely.
type QuoteEngine struct {
	Tax    domain.TaxConfig
	Logger Logger
}

// NewQuoteEngine creates an engine with the default Québec tax configuration
// and a no-op logger.
func NewQuoteEngine() *QuoteEngine {
	return &QuoteEngine{
		Tax:    domain.DefaultTaxConfig(),
		Logger: NopLogger{},
	}
}

// NewQuoteEngineWithTax creates an engine for a specific tax configuration.
func NewQuoteEngineWithTax(tax domain.TaxConfig) *QuoteEngine {
	return &QuoteEngine{
		Tax:    tax,
		Logger: NopLogger{},
	}
}

// SetLogger sets the engine logger. A nil logger reverts to no-op.
func (e *QuoteEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// QuoteFinance computes the finance comparison for a program. A nil result
// means no computation was attempted (no program or non-positive price).
func (e *QuoteEngine) QuoteFinance(program *domain.Program, in domain.FinanceInputs) *domain.FinanceResult {
	result := CalculateFinance(program, in)
	if result == nil {
		e.Logger.Debugf("finance quote skipped: program=%v price=%s", program != nil, in.VehiclePrice)
		return nil
	}
	if result.Option1 == nil && result.Option2 == nil {
		e.Logger.Debugf("finance quote has no available option at term %d", in.Term)
	}
	return result
}

// QuoteLease computes the lease comparison and analysis grid for a program.
// A nil result means the vehicle has no lease program (no residual or rate
// match) or no computation was attempted.
func (e *QuoteEngine) QuoteLease(program *domain.Program, in domain.LeaseInputs, ref *domain.LeaseReference) *domain.LeaseResult {
	result := CalculateLease(program, in, ref, e.Tax)
	if result == nil {
		if program != nil {
			e.Logger.Debugf("lease quote skipped: no residual or rate match for %q %q", program.Brand, program.Model)
		}
		return nil
	}
	e.Logger.Debugf("lease grid computed: %d cells", len(result.Grid))
	return result
}
