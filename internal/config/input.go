package config

import (
	"fmt"
	"os"

	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"gopkg.in/yaml.v3"
)

// QuoteFile is the on-disk form of a quote request: the vehicle's incentive
// program plus the finance and/or lease inputs the user adjusted.
type QuoteFile struct {
	Program domain.Program        `yaml:"program" json:"program"`
	Finance *domain.FinanceInputs `yaml:"finance,omitempty" json:"finance,omitempty"`
	Lease   *domain.LeaseInputs   `yaml:"lease,omitempty" json:"lease,omitempty"`
}

// InputParser handles parsing of quote request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadQuoteFile loads a quote request from a YAML file
func (ip *InputParser) LoadQuoteFile(filename string) (*QuoteFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var quote QuoteFile
	if err := yaml.Unmarshal(data, &quote); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateQuote(&quote); err != nil {
		return nil, fmt.Errorf("quote validation failed: %w", err)
	}

	return &quote, nil
}

// ValidateQuote validates a loaded quote request. Sparse rate tables are
// normal; only structural problems are errors.
func (ip *InputParser) ValidateQuote(quote *QuoteFile) error {
	if err := ip.validateProgram(&quote.Program); err != nil {
		return fmt.Errorf("program validation failed: %w", err)
	}
	if quote.Finance == nil && quote.Lease == nil {
		return fmt.Errorf("quote must include finance or lease inputs")
	}
	if quote.Finance != nil {
		if err := ip.validateFinanceInputs(quote.Finance); err != nil {
			return fmt.Errorf("finance inputs validation failed: %w", err)
		}
	}
	if quote.Lease != nil {
		if err := ip.validateLeaseInputs(quote.Lease); err != nil {
			return fmt.Errorf("lease inputs validation failed: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateProgram(program *domain.Program) error {
	if program.Brand == "" {
		return fmt.Errorf("brand is required")
	}
	if program.Model == "" {
		return fmt.Errorf("model is required")
	}
	if len(program.Option1Rates) == 0 {
		return fmt.Errorf("option1_rates is required")
	}
	for term := range program.Option1Rates {
		if !domain.ContainsTerm(domain.FinanceTerms, term) {
			return fmt.Errorf("option1_rates has inadmissible term %d", term)
		}
	}
	for term := range program.Option2Rates {
		if !domain.ContainsTerm(domain.FinanceTerms, term) {
			return fmt.Errorf("option2_rates has inadmissible term %d", term)
		}
	}
	if program.ConsumerCash.IsNegative() {
		return fmt.Errorf("consumer cash cannot be negative")
	}
	if program.BonusCash.IsNegative() {
		return fmt.Errorf("bonus cash cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateFinanceInputs(in *domain.FinanceInputs) error {
	if !in.VehiclePrice.IsPositive() {
		return fmt.Errorf("vehicle price must be positive")
	}
	if !domain.ContainsTerm(domain.FinanceTerms, in.Term) {
		return fmt.Errorf("term %d is not an admissible finance term", in.Term)
	}
	if in.Frequency == "" {
		in.Frequency = domain.FrequencyMonthly
	}
	if !in.Frequency.Valid() {
		return fmt.Errorf("frequency must be monthly, biweekly, or weekly")
	}
	if in.CashDown.IsNegative() {
		return fmt.Errorf("cash down cannot be negative")
	}
	if in.TradeInValue.IsNegative() {
		return fmt.Errorf("trade-in value cannot be negative")
	}
	if in.TradeInOwed.IsNegative() {
		return fmt.Errorf("trade-in owed cannot be negative")
	}
	for i, a := range in.Accessories {
		if a.Price.IsNegative() {
			return fmt.Errorf("accessory %d price cannot be negative", i)
		}
	}
	return nil
}

func (ip *InputParser) validateLeaseInputs(in *domain.LeaseInputs) error {
	if !in.VehiclePrice.IsPositive() {
		return fmt.Errorf("vehicle price must be positive")
	}
	if !domain.ContainsTerm(domain.LeaseTerms, in.Term) {
		return fmt.Errorf("term %d is not an admissible lease term", in.Term)
	}
	if in.KMPerYear == 0 {
		in.KMPerYear = domain.DefaultMileageTier
	}
	if !domain.ContainsTerm(domain.MileageTiers, in.KMPerYear) {
		return fmt.Errorf("mileage tier %d is not admissible", in.KMPerYear)
	}
	if in.MSRPForResidual.IsNegative() {
		return fmt.Errorf("msrp for residual cannot be negative")
	}
	if in.CashDown.IsNegative() {
		return fmt.Errorf("cash down cannot be negative")
	}
	if in.TradeInValue.IsNegative() {
		return fmt.Errorf("trade-in value cannot be negative")
	}
	if in.TradeInOwed.IsNegative() {
		return fmt.Errorf("trade-in owed cannot be negative")
	}
	return nil
}
