package config

import (
	"fmt"
	"os"

	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// mileageRow is the on-disk form of one mileage-adjustment cell. The table
// is authored as a flat list because YAML maps cannot key on (tier, term).
type mileageRow struct {
	KMPerYear int             `yaml:"km_per_year"`
	Term      int             `yaml:"term"`
	Delta     decimal.Decimal `yaml:"delta"`
}

type referenceFile struct {
	Residuals  []domain.ResidualVehicle `yaml:"residuals"`
	LeaseRates []domain.LeaseRateEntry  `yaml:"lease_rates"`
	Mileage    []mileageRow             `yaml:"mileage"`
}

// LoadResidualTable loads the residual-percentage table.
func (ip *InputParser) LoadResidualTable(filename string) ([]domain.ResidualVehicle, error) {
	var file referenceFile
	if err := ip.readYAML(filename, &file); err != nil {
		return nil, err
	}
	for i, row := range file.Residuals {
		if row.Brand == "" || row.Model == "" {
			return nil, fmt.Errorf("residual row %d: brand and model are required", i)
		}
		for term, pct := range row.Residuals {
			if !domain.ContainsTerm(domain.LeaseTerms, term) {
				return nil, fmt.Errorf("residual row %d: inadmissible term %d", i, term)
			}
			if pct.IsNegative() {
				return nil, fmt.Errorf("residual row %d: negative residual at term %d", i, term)
			}
		}
	}
	return file.Residuals, nil
}

// LoadLeaseRateTable loads the lease-rate table.
func (ip *InputParser) LoadLeaseRateTable(filename string) ([]domain.LeaseRateEntry, error) {
	var file referenceFile
	if err := ip.readYAML(filename, &file); err != nil {
		return nil, err
	}
	for i, entry := range file.LeaseRates {
		if entry.Brand == "" || entry.Model == "" {
			return nil, fmt.Errorf("lease rate row %d: brand and model are required", i)
		}
		if len(entry.StandardRates) == 0 {
			return nil, fmt.Errorf("lease rate row %d: standard_rates is required", i)
		}
		if entry.LeaseCash.IsNegative() {
			return nil, fmt.Errorf("lease rate row %d: lease cash cannot be negative", i)
		}
	}
	return file.LeaseRates, nil
}

// LoadMileageTable loads the mileage-adjustment table.
func (ip *InputParser) LoadMileageTable(filename string) (domain.MileageTable, error) {
	var file referenceFile
	if err := ip.readYAML(filename, &file); err != nil {
		return nil, err
	}
	table := make(domain.MileageTable, len(file.Mileage))
	for i, row := range file.Mileage {
		if !domain.ContainsTerm(domain.MileageTiers, row.KMPerYear) {
			return nil, fmt.Errorf("mileage row %d: inadmissible tier %d", i, row.KMPerYear)
		}
		if !domain.ContainsTerm(domain.LeaseTerms, row.Term) {
			return nil, fmt.Errorf("mileage row %d: inadmissible term %d", i, row.Term)
		}
		table[domain.MileageKey{KMPerYear: row.KMPerYear, Term: row.Term}] = row.Delta
	}
	return table, nil
}

// LoadLeaseReference loads all three lease reference tables. The three
// sections may live in one file or in separate files; empty filenames are
// skipped so a caller can supply only what it has.
func (ip *InputParser) LoadLeaseReference(residualFile, rateFile, mileageFile string) (*domain.LeaseReference, error) {
	ref := &domain.LeaseReference{}
	if residualFile != "" {
		rows, err := ip.LoadResidualTable(residualFile)
		if err != nil {
			return nil, fmt.Errorf("loading residual table: %w", err)
		}
		ref.Residuals = rows
	}
	if rateFile != "" {
		entries, err := ip.LoadLeaseRateTable(rateFile)
		if err != nil {
			return nil, fmt.Errorf("loading lease rate table: %w", err)
		}
		ref.LeaseRates = entries
	}
	if mileageFile != "" {
		table, err := ip.LoadMileageTable(mileageFile)
		if err != nil {
			return nil, fmt.Errorf("loading mileage table: %w", err)
		}
		ref.Mileage = table
	}
	return ref, nil
}

func (ip *InputParser) readYAML(filename string, out any) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML in %s: %w", filename, err)
	}
	return nil
}
