package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stocklens/internal/errors"
	"stocklens/internal/infrastructure"
	"stocklens/internal/services"
	"stocklens/pkg/contracts/domain"
)

func f(v float64) *float64 { return &v }

// fakeStocks implements StockDataService with canned results.
type fakeStocks struct {
	overview *domain.CompanyOverview
	stmt     *domain.Statement
	prices   *domain.PriceSeries
	earnings *domain.Earnings
	err      error

	lastSymbol   string
	lastInterval string
}

func (s *fakeStocks) Overview(_ context.Context, symbol string) (*domain.CompanyOverview, error) {
	s.lastSymbol = symbol
	return s.overview, s.err
}

func (s *fakeStocks) IncomeStatement(_ context.Context, symbol string) (*domain.Statement, error) {
	s.lastSymbol = symbol
	return s.stmt, s.err
}

func (s *fakeStocks) BalanceSheet(_ context.Context, symbol string) (*domain.Statement, error) {
	s.lastSymbol = symbol
	return s.stmt, s.err
}

func (s *fakeStocks) CashFlow(_ context.Context, symbol string) (*domain.Statement, error) {
	s.lastSymbol = symbol
	return s.stmt, s.err
}

func (s *fakeStocks) DailyPrices(_ context.Context, symbol string) (*domain.PriceSeries, error) {
	s.lastSymbol = symbol
	return s.prices, s.err
}

func (s *fakeStocks) IntradayPrices(_ context.Context, symbol, interval string) (*domain.PriceSeries, error) {
	s.lastSymbol = symbol
	s.lastInterval = interval
	return s.prices, s.err
}

func (s *fakeStocks) Earnings(_ context.Context, symbol string) (*domain.Earnings, error) {
	s.lastSymbol = symbol
	return s.earnings, s.err
}

// fakeAnalysis implements AnalyticsService with canned results.
type fakeAnalysis struct {
	metrics  *services.MetricsReport
	series   *services.SeriesReport
	forecast *services.ForecastReport
	err      error

	lastField  string
	lastPeriod domain.PeriodType
	lastInputs domain.ForecastInputs
}

func (a *fakeAnalysis) Metrics(_ context.Context, _ string, period domain.PeriodType) (*services.MetricsReport, error) {
	a.lastPeriod = period
	return a.metrics, a.err
}

func (a *fakeAnalysis) Series(_ context.Context, _ string, field string, period domain.PeriodType) (*services.SeriesReport, error) {
	a.lastField = field
	a.lastPeriod = period
	return a.series, a.err
}

func (a *fakeAnalysis) FreeCashFlow(_ context.Context, _ string, period domain.PeriodType) (*services.SeriesReport, error) {
	a.lastPeriod = period
	return a.series, a.err
}

func (a *fakeAnalysis) Forecast(_ context.Context, _ string) (*services.ForecastReport, error) {
	return a.forecast, a.err
}

func (a *fakeAnalysis) ForecastWith(_ context.Context, _ string, inputs domain.ForecastInputs) (*services.ForecastReport, error) {
	a.lastInputs = inputs
	return a.forecast, a.err
}

func newTestRouter(stocks *fakeStocks, analysis *fakeAnalysis) chi.Router {
	logger := infrastructure.GetLogger()
	handler := NewStockHandler(stocks, analysis, logger, apperrors.NewErrorHandler(logger, false))
	r := chi.NewRouter()
	r.Mount("/api/stocks", handler.Routes())
	return r
}

func doRequest(t *testing.T, router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetOverview(t *testing.T) {
	stocks := &fakeStocks{overview: &domain.CompanyOverview{Symbol: "AAPL", Name: "Apple Inc", MarketCap: f(3e12)}}
	router := newTestRouter(stocks, &fakeAnalysis{})

	rec := doRequest(t, router, http.MethodGet, "/api/stocks/aapl/overview", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL", stocks.lastSymbol)
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))

	var got domain.CompanyOverview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Apple Inc", got.Name)
	require.NotNil(t, got.MarketCap)
}

func TestGetOverviewInvalidSymbol(t *testing.T) {
	stocks := &fakeStocks{}
	router := newTestRouter(stocks, &fakeAnalysis{})

	rec := doRequest(t, router, http.MethodGet, "/api/stocks/AAPL123/overview", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	// The service must not be reached.
	assert.Empty(t, stocks.lastSymbol)
}

func TestGetPricesCacheControl(t *testing.T) {
	stocks := &fakeStocks{prices: &domain.PriceSeries{Symbol: "AAPL", Interval: "daily"}}
	router := newTestRouter(stocks, &fakeAnalysis{})

	rec := doRequest(t, router, http.MethodGet, "/api/stocks/AAPL/prices", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=900", rec.Header().Get("Cache-Control"))
}

func TestGetIntradayDefaultsInterval(t *testing.T) {
	stocks := &fakeStocks{prices: &domain.PriceSeries{Symbol: "AAPL", Interval: "5min"}}
	router := newTestRouter(stocks, &fakeAnalysis{})

	rec := doRequest(t, router, http.MethodGet, "/api/stocks/AAPL/intraday", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5min", stocks.lastInterval)

	rec = doRequest(t, router, http.MethodGet, "/api/stocks/AAPL/intraday?interval=15min", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "15min", stocks.lastInterval)
}

func TestProviderErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "all keys rate limited", err: apperrors.NewAllKeysRateLimited("AAPL", 3), wantStatus: http.StatusTooManyRequests},
		{name: "all keys skipped", err: apperrors.NewAllKeysSkipped("AAPL", "advisory"), wantStatus: http.StatusServiceUnavailable},
		{name: "transport", err: apperrors.NewTransport("AAPL", assert.AnError), wantStatus: http.StatusBadGateway},
		{name: "provider rejected", err: apperrors.NewProviderRejected("AAPL", "bad function"), wantStatus: http.StatusBadGateway},
		{name: "empty result", err: apperrors.NewEmptyResult("AAPL", "overview"), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeStocks{err: tt.err}, &fakeAnalysis{})

			rec := doRequest(t, router, http.MethodGet, "/api/stocks/AAPL/overview", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
			// Errors never advertise cacheability.
			assert.Empty(t, rec.Header().Get("Cache-Control"))
		})
	}
}

func TestGetMetricsPeriod(t *testing.T) {
	analysis := &fakeAnalysis{metrics: &services.MetricsReport{Symbol: "AAPL", Period: domain.PeriodQuarterly}}
	router := newTestRouter(&fakeStocks{}, analysis)

	rec := doRequest(t, router, http.MethodGet, "/api/stocks/AAPL/metrics?period=quarterly", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PeriodQuarterly, analysis.lastPeriod)

	rec = doRequest(t, router, http.MethodGet, "/api/stocks/AAPL/metrics?period=hourly", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSeries(t *testing.T) {
	analysis := &fakeAnalysis{series: &services.SeriesReport{Symbol: "AAPL", Field: domain.FieldTotalRevenue}}
	router := newTestRouter(&fakeStocks{}, analysis)

	rec := doRequest(t, router, http.MethodGet, "/api/stocks/AAPL/series/totalRevenue", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "totalRevenue", analysis.lastField)
	assert.Equal(t, domain.PeriodAnnual, analysis.lastPeriod)
}

func TestPostForecast(t *testing.T) {
	analysis := &fakeAnalysis{forecast: &services.ForecastReport{Symbol: "AAPL"}}
	router := newTestRouter(&fakeStocks{}, analysis)

	body := `{"revenue_growth":10,"gross_margin":40,"operating_margin":25,"net_margin":20,"tax_rate":21,"pe_multiple":30,"base_revenue":1000,"shares_outstanding":100}`
	rec := doRequest(t, router, http.MethodPost, "/api/stocks/AAPL/forecast", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 10, analysis.lastInputs.RevenueGrowth, 0.01)
	assert.InDelta(t, 1000, analysis.lastInputs.BaseRevenue, 0.01)
}

func TestPostForecastRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(&fakeStocks{}, &fakeAnalysis{})

	rec := doRequest(t, router, http.MethodPost, "/api/stocks/AAPL/forecast", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Out-of-range assumptions fail validation.
	rec = doRequest(t, router, http.MethodPost, "/api/stocks/AAPL/forecast", `{"tax_rate":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	logger := infrastructure.GetLogger()
	handler := NewHealthHandler("1.2.3", 3, logger)

	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.Equal(t, 3, status.KeyPool)
}
