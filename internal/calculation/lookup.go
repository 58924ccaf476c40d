package calculation

import (
	"strings"

	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"github.com/shopspring/decimal"
)

// RateForTerm resolves the rate at an exact term key. The boolean is false
// when the table has no entry, meaning the option cannot be computed at
// that term; callers must never substitute zero for a missing rate.
func RateForTerm(table domain.RateTable, term int) (decimal.Decimal, bool) {
	return table.Rate(term)
}

// containsEither reports case-insensitive substring containment in either
// direction. Program data and residual/rate tables are authored
// independently, so "Sport AWD" must match "AWD" and vice versa.
func containsEither(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// sameBrand requires an exact (case-insensitive) brand match.
func sameBrand(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// MatchResidualVehicle finds the residual-table row for a program. Brand
// must match exactly; model and trim match by bidirectional containment.
// The first pass additionally requires body-style equality; when no row
// qualifies the search is retried without the body-style constraint, since
// trims and body styles rarely align token-for-token across data sources.
func MatchResidualVehicle(program *domain.Program, bodyStyle string, rows []domain.ResidualVehicle) (*domain.ResidualVehicle, bool) {
	if program == nil {
		return nil, false
	}
	if bodyStyle != "" {
		for i := range rows {
			row := &rows[i]
			if !strings.EqualFold(strings.TrimSpace(row.BodyStyle), strings.TrimSpace(bodyStyle)) {
				continue
			}
			if residualRowMatches(program, row) {
				return row, true
			}
		}
	}
	for i := range rows {
		row := &rows[i]
		if residualRowMatches(program, row) {
			return row, true
		}
	}
	return nil, false
}

func residualRowMatches(program *domain.Program, row *domain.ResidualVehicle) bool {
	if !sameBrand(program.Brand, row.Brand) {
		return false
	}
	if !containsEither(program.Model, row.Model) {
		return false
	}
	return containsEither(program.Trim, row.Trim)
}

// MatchLeaseRates finds the lease-rate row for a program, preferring a row
// whose trim matches by containment and falling back to a model-only match.
func MatchLeaseRates(program *domain.Program, entries []domain.LeaseRateEntry) (*domain.LeaseRateEntry, bool) {
	if program == nil {
		return nil, false
	}
	for i := range entries {
		entry := &entries[i]
		if sameBrand(program.Brand, entry.Brand) &&
			containsEither(program.Model, entry.Model) &&
			containsEither(program.Trim, entry.Trim) {
			return entry, true
		}
	}
	for i := range entries {
		entry := &entries[i]
		if sameBrand(program.Brand, entry.Brand) && containsEither(program.Model, entry.Model) {
			return entry, true
		}
	}
	return nil, false
}
