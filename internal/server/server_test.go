package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lianag2018/calcauto-final-sub001/internal/calculation"
	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"github.com/Lianag2018/calcauto-final-sub001/internal/quotecache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(cache quotecache.Cache) *Server {
	ref := &domain.LeaseReference{
		Residuals: []domain.ResidualVehicle{
			{
				Brand: "Honda", Model: "Civic", Trim: "Sport",
				Residuals: map[int]decimal.Decimal{36: decimal.NewFromInt(55)},
			},
		},
		LeaseRates: []domain.LeaseRateEntry{
			{
				Brand: "Honda", Model: "Civic", Trim: "Sport",
				StandardRates: domain.RateTable{36: decimal.NewFromFloat(5.00)},
				LeaseCash:     decimal.NewFromInt(1000),
			},
		},
	}
	return New(calculation.NewQuoteEngine(), ref, cache, nil)
}

func financeBody(t *testing.T) *bytes.Reader {
	t.Helper()
	req := FinanceRequest{
		Program: domain.Program{
			Brand: "Honda", Model: "Civic", Trim: "Sport",
			ConsumerCash: decimal.NewFromInt(1000),
			Option1Rates: domain.RateTable{60: decimal.NewFromFloat(6.49)},
		},
		Inputs: domain.FinanceInputs{
			VehiclePrice: decimal.NewFromInt(30000),
			Term:         60,
		},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func leaseBody(t *testing.T) *bytes.Reader {
	t.Helper()
	req := LeaseRequest{
		Program: domain.Program{
			Brand: "Honda", Model: "Civic", Trim: "Sport",
			Option1Rates: domain.RateTable{60: decimal.NewFromFloat(6.49)},
		},
		Inputs: domain.LeaseInputs{
			VehiclePrice: decimal.NewFromInt(45000),
			Term:         36,
			KMPerYear:    24000,
		},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestFinanceQuoteEndpoint(t *testing.T) {
	mux := testServer(nil).Routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quote/finance", financeBody(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result domain.FinanceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Option1)
	// 30000 - 1000 consumer cash at 6.49% over 60 months.
	assert.InDelta(t, 567.28, result.Option1.MonthlyPayment.InexactFloat64(), 0.02)
	assert.Equal(t, domain.BestOption1, result.Best)
}

func TestLeaseQuoteEndpoint(t *testing.T) {
	mux := testServer(nil).Routes()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quote/lease", leaseBody(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.LeaseResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.Standard)
	assert.True(t, result.Standard.ResidualValue.Equal(decimal.NewFromInt(24750)))
	assert.NotEmpty(t, result.Grid)
}

func TestQuoteEndpointsMethodNotAllowed(t *testing.T) {
	mux := testServer(nil).Routes()
	for _, path := range []string{"/api/v1/quote/finance", "/api/v1/quote/lease"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}

func TestQuoteEndpointBadBody(t *testing.T) {
	mux := testServer(nil).Routes()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quote/finance", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteEndpointNoResult(t *testing.T) {
	mux := testServer(nil).Routes()

	req := FinanceRequest{Inputs: domain.FinanceInputs{Term: 60}}
	data, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quote/finance", bytes.NewReader(data)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLeaseQuoteNoProgramMatch(t *testing.T) {
	mux := testServer(nil).Routes()

	req := LeaseRequest{
		Program: domain.Program{
			Brand: "Toyota", Model: "Corolla",
			Option1Rates: domain.RateTable{60: decimal.NewFromFloat(6.49)},
		},
		Inputs: domain.LeaseInputs{VehiclePrice: decimal.NewFromInt(45000), Term: 36, KMPerYear: 24000},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quote/lease", bytes.NewReader(data)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestQuoteCaching(t *testing.T) {
	cache := quotecache.NewMemory()
	mux := testServer(cache).Routes()

	first := httptest.NewRecorder()
	mux.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/quote/finance", financeBody(t)))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Quote-Cache"))

	second := httptest.NewRecorder()
	mux.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/quote/finance", financeBody(t)))
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "hit", second.Header().Get("X-Quote-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	mux := testServer(nil).Routes()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
