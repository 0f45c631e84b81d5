package http

import (
	"context"

	"stocklens/internal/services"
	"stocklens/pkg/contracts/domain"
)

// StockDataService serves raw provider data sets.
type StockDataService interface {
	Overview(ctx context.Context, symbol string) (*domain.CompanyOverview, error)
	IncomeStatement(ctx context.Context, symbol string) (*domain.Statement, error)
	BalanceSheet(ctx context.Context, symbol string) (*domain.Statement, error)
	CashFlow(ctx context.Context, symbol string) (*domain.Statement, error)
	DailyPrices(ctx context.Context, symbol string) (*domain.PriceSeries, error)
	IntradayPrices(ctx context.Context, symbol, interval string) (*domain.PriceSeries, error)
	Earnings(ctx context.Context, symbol string) (*domain.Earnings, error)
}

// AnalyticsService serves derived metrics, series, and forecasts.
type AnalyticsService interface {
	Metrics(ctx context.Context, symbol string, period domain.PeriodType) (*services.MetricsReport, error)
	Series(ctx context.Context, symbol, field string, period domain.PeriodType) (*services.SeriesReport, error)
	FreeCashFlow(ctx context.Context, symbol string, period domain.PeriodType) (*services.SeriesReport, error)
	Forecast(ctx context.Context, symbol string) (*services.ForecastReport, error)
	ForecastWith(ctx context.Context, symbol string, inputs domain.ForecastInputs) (*services.ForecastReport, error)
}
