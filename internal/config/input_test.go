package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quote.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validQuoteYAML = `
program:
  brand: Honda
  model: Civic
  trim: Sport
  year: 2024
  consumer_cash: 1000
  bonus_cash: 500
  option1_rates:
    36: 4.99
    60: 6.49
  option2_rates:
    60: 7.99
finance:
  vehicle_price: 30000
  term: 60
  cash_down: 2000
  accessories:
    - name: winter mats
      price: 250
lease:
  vehicle_price: 30000
  msrp_for_residual: 32000
  term: 48
  km_per_year: 18000
  admin_fee: 499
`

func TestLoadQuoteFile(t *testing.T) {
	parser := NewInputParser()
	quote, err := parser.LoadQuoteFile(writeTempYAML(t, validQuoteYAML))
	require.NoError(t, err)

	assert.Equal(t, "Honda", quote.Program.Brand)
	assert.Equal(t, "Civic", quote.Program.Model)
	assert.True(t, quote.Program.ConsumerCash.Equal(decimal.NewFromInt(1000)))
	assert.True(t, quote.Program.HasOption2())

	rate, ok := quote.Program.Option1Rates.Rate(60)
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromFloat(6.49)))

	require.NotNil(t, quote.Finance)
	assert.Equal(t, 60, quote.Finance.Term)
	assert.Equal(t, domain.FrequencyMonthly, quote.Finance.Frequency, "frequency defaults to monthly")
	require.Len(t, quote.Finance.Accessories, 1)
	assert.True(t, quote.Finance.Accessories[0].Price.Equal(decimal.NewFromInt(250)))

	require.NotNil(t, quote.Lease)
	assert.Equal(t, 18000, quote.Lease.KMPerYear)
	assert.True(t, quote.Lease.MSRPForResidual.Equal(decimal.NewFromInt(32000)))
}

func TestLoadQuoteFileMissing(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadQuoteFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadQuoteFileBadYAML(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadQuoteFile(writeTempYAML(t, "program: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateQuote(t *testing.T) {
	price := decimal.NewFromInt(30000)
	rates := domain.RateTable{60: decimal.NewFromFloat(6.49)}

	valid := func() *QuoteFile {
		return &QuoteFile{
			Program: domain.Program{Brand: "Honda", Model: "Civic", Option1Rates: rates},
			Finance: &domain.FinanceInputs{VehiclePrice: price, Term: 60},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*QuoteFile)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(q *QuoteFile) {},
		},
		{
			name:    "missing brand",
			mutate:  func(q *QuoteFile) { q.Program.Brand = "" },
			wantErr: "brand is required",
		},
		{
			name:    "missing model",
			mutate:  func(q *QuoteFile) { q.Program.Model = "" },
			wantErr: "model is required",
		},
		{
			name:    "missing option1 rates",
			mutate:  func(q *QuoteFile) { q.Program.Option1Rates = nil },
			wantErr: "option1_rates is required",
		},
		{
			name: "inadmissible finance rate term",
			mutate: func(q *QuoteFile) {
				q.Program.Option1Rates = domain.RateTable{42: decimal.NewFromFloat(5)}
			},
			wantErr: "inadmissible term 42",
		},
		{
			name:    "negative consumer cash",
			mutate:  func(q *QuoteFile) { q.Program.ConsumerCash = decimal.NewFromInt(-1) },
			wantErr: "consumer cash cannot be negative",
		},
		{
			name:    "neither finance nor lease",
			mutate:  func(q *QuoteFile) { q.Finance = nil },
			wantErr: "finance or lease",
		},
		{
			name:    "non-positive price",
			mutate:  func(q *QuoteFile) { q.Finance.VehiclePrice = decimal.Zero },
			wantErr: "vehicle price must be positive",
		},
		{
			name:    "inadmissible finance term",
			mutate:  func(q *QuoteFile) { q.Finance.Term = 42 },
			wantErr: "not an admissible finance term",
		},
		{
			name:    "bad frequency",
			mutate:  func(q *QuoteFile) { q.Finance.Frequency = "daily" },
			wantErr: "frequency must be",
		},
		{
			name:    "negative cash down",
			mutate:  func(q *QuoteFile) { q.Finance.CashDown = decimal.NewFromInt(-100) },
			wantErr: "cash down cannot be negative",
		},
		{
			name: "negative accessory price",
			mutate: func(q *QuoteFile) {
				q.Finance.Accessories = []domain.Accessory{{Name: "mats", Price: decimal.NewFromInt(-1)}}
			},
			wantErr: "price cannot be negative",
		},
		{
			name: "inadmissible lease term",
			mutate: func(q *QuoteFile) {
				q.Lease = &domain.LeaseInputs{VehiclePrice: price, Term: 42}
			},
			wantErr: "not an admissible lease term",
		},
		{
			name: "inadmissible mileage tier",
			mutate: func(q *QuoteFile) {
				q.Lease = &domain.LeaseInputs{VehiclePrice: price, Term: 48, KMPerYear: 15000}
			},
			wantErr: "mileage tier 15000",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := valid()
			tt.mutate(quote)
			err := parser.ValidateQuote(quote)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateQuoteLeaseMileageDefault(t *testing.T) {
	parser := NewInputParser()
	quote := &QuoteFile{
		Program: domain.Program{
			Brand: "Honda", Model: "Civic",
			Option1Rates: domain.RateTable{60: decimal.NewFromFloat(6.49)},
		},
		Lease: &domain.LeaseInputs{VehiclePrice: decimal.NewFromInt(30000), Term: 48},
	}
	require.NoError(t, parser.ValidateQuote(quote))
	assert.Equal(t, domain.DefaultMileageTier, quote.Lease.KMPerYear)
}
