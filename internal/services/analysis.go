package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"stocklens/internal/analytics"
	apperrors "stocklens/internal/errors"
	"stocklens/internal/forecast"
	"stocklens/pkg/contracts/domain"
)

// statementForField routes a line-item key to the statement that carries it.
var statementForField = map[string]domain.StatementType{
	domain.FieldTotalRevenue:            domain.StatementIncome,
	domain.FieldGrossProfit:             domain.StatementIncome,
	domain.FieldCostOfRevenue:           domain.StatementIncome,
	domain.FieldOperatingIncome:         domain.StatementIncome,
	domain.FieldEBITDA:                  domain.StatementIncome,
	domain.FieldIncomeBeforeTax:         domain.StatementIncome,
	domain.FieldIncomeTaxExpense:        domain.StatementIncome,
	domain.FieldNetIncome:               domain.StatementIncome,
	domain.FieldTotalAssets:             domain.StatementBalance,
	domain.FieldTotalCurrentAssets:      domain.StatementBalance,
	domain.FieldTotalCurrentLiabilities: domain.StatementBalance,
	domain.FieldTotalLiabilities:        domain.StatementBalance,
	domain.FieldTotalShareholderEquity:  domain.StatementBalance,
	domain.FieldLongTermDebt:            domain.StatementBalance,
	domain.FieldCashAndEquivalents:      domain.StatementBalance,
	domain.FieldOperatingCashflow:       domain.StatementCashFlow,
	domain.FieldCapitalExpenditures:     domain.StatementCashFlow,
	domain.FieldDividendPayout:          domain.StatementCashFlow,
}

// MetricsReport bundles the four derived metric sets for one symbol.
type MetricsReport struct {
	Symbol        string                       `json:"symbol"`
	Period        domain.PeriodType            `json:"period"`
	Growth        *domain.GrowthMetrics        `json:"growth"`
	Profitability *domain.ProfitabilityMetrics `json:"profitability"`
	Efficiency    *domain.EfficiencyMetrics    `json:"efficiency"`
	Valuation     *domain.ValuationMetrics     `json:"valuation"`
}

// ForecastReport pairs projection assumptions with their outputs and the
// upside against the latest close, when one is known.
type ForecastReport struct {
	Symbol       string                 `json:"symbol"`
	Inputs       domain.ForecastInputs  `json:"inputs"`
	Outputs      domain.ForecastOutputs `json:"outputs"`
	CurrentPrice *float64               `json:"current_price"`
	Upside       *float64               `json:"upside"`
}

// SeriesReport is one line item tracked across fiscal periods.
type SeriesReport struct {
	Symbol string            `json:"symbol"`
	Field  string            `json:"field"`
	Period domain.PeriodType `json:"period"`
	Points []analytics.Point `json:"points"`
}

// AnalysisService derives metrics, series, and forecasts on top of the
// raw data sets served by StockService.
type AnalysisService struct {
	stocks *StockService
	logger *slog.Logger
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(stocks *StockService, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{stocks: stocks, logger: logger}
}

// Metrics fetches the overview, income statement, and balance sheet
// concurrently and derives all four metric sets. A failure on any leg
// fails the whole report; partial metric sets would be indistinguishable
// from genuinely sparse data.
func (s *AnalysisService) Metrics(ctx context.Context, symbol string, period domain.PeriodType) (*MetricsReport, error) {
	var (
		overview *domain.CompanyOverview
		income   *domain.Statement
		balance  *domain.Statement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overview, err = s.stocks.Overview(gctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		income, err = s.stocks.IncomeStatement(gctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		balance, err = s.stocks.BalanceSheet(gctx, symbol)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MetricsReport{
		Symbol:        income.Symbol,
		Period:        period,
		Growth:        analytics.Growth(income, period),
		Profitability: analytics.Profitability(income, balance, period),
		Efficiency:    analytics.Efficiency(income, balance, period),
		Valuation:     analytics.Valuation(overview),
	}, nil
}

// Series tracks one statement line item across fiscal periods, oldest
// first. Unknown field names are rejected before any fetch.
func (s *AnalysisService) Series(ctx context.Context, symbol, field string, period domain.PeriodType) (*SeriesReport, error) {
	stype, ok := statementForField[field]
	if !ok {
		return nil, apperrors.NewInvalidArgument("unknown line item: " + field)
	}

	var stmt *domain.Statement
	var err error
	switch stype {
	case domain.StatementIncome:
		stmt, err = s.stocks.IncomeStatement(ctx, symbol)
	case domain.StatementBalance:
		stmt, err = s.stocks.BalanceSheet(ctx, symbol)
	default:
		stmt, err = s.stocks.CashFlow(ctx, symbol)
	}
	if err != nil {
		return nil, err
	}

	return &SeriesReport{
		Symbol: stmt.Symbol,
		Field:  field,
		Period: period,
		Points: analytics.BuildSeries(stmt, field, period),
	}, nil
}

// FreeCashFlow derives the free-cash-flow series from the cash-flow
// statement.
func (s *AnalysisService) FreeCashFlow(ctx context.Context, symbol string, period domain.PeriodType) (*SeriesReport, error) {
	cashFlow, err := s.stocks.CashFlow(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &SeriesReport{
		Symbol: cashFlow.Symbol,
		Field:  "freeCashFlow",
		Period: period,
		Points: analytics.FreeCashFlow(cashFlow, period),
	}, nil
}

// Forecast seeds default assumptions from the fundamentals and projects
// one period forward.
func (s *AnalysisService) Forecast(ctx context.Context, symbol string) (*ForecastReport, error) {
	overview, income, prices, err := s.forecastData(ctx, symbol)
	if err != nil {
		return nil, err
	}

	inputs := forecast.DefaultInputs(income, overview)
	return s.buildForecast(income.Symbol, inputs, prices), nil
}

// ForecastWith projects from caller-supplied assumptions. Only the price
// series is fetched, to express the projection as upside against the
// latest close.
func (s *AnalysisService) ForecastWith(ctx context.Context, symbol string, inputs domain.ForecastInputs) (*ForecastReport, error) {
	prices, err := s.stocks.DailyPrices(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return s.buildForecast(prices.Symbol, inputs, prices), nil
}

func (s *AnalysisService) forecastData(ctx context.Context, symbol string) (*domain.CompanyOverview, *domain.Statement, *domain.PriceSeries, error) {
	var (
		overview *domain.CompanyOverview
		income   *domain.Statement
		prices   *domain.PriceSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overview, err = s.stocks.Overview(gctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		income, err = s.stocks.IncomeStatement(gctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		prices, err = s.stocks.DailyPrices(gctx, symbol)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return overview, income, prices, nil
}

func (s *AnalysisService) buildForecast(symbol string, inputs domain.ForecastInputs, prices *domain.PriceSeries) *ForecastReport {
	outputs := forecast.Project(inputs)

	var current *float64
	if prices != nil {
		current = prices.LatestClose()
	}

	return &ForecastReport{
		Symbol:       symbol,
		Inputs:       inputs,
		Outputs:      outputs,
		CurrentPrice: current,
		Upside:       forecast.Upside(outputs.ImpliedPrice, current),
	}
}
