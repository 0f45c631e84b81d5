package provider

import (
	"encoding/json"
	"strings"

	apperrors "stocklens/internal/errors"
	"stocklens/pkg/contracts/domain"
)

// The normalizer maps classified Success payloads into typed domain
// records. Each resource applies a post-condition: a response that lacks
// both an identifying symbol/name and any data rows becomes an
// empty-result error (unknown ticker, or the resource is not offered for
// it), distinct from a parse or transport failure.

func normalizeOverview(symbol string, body []byte) (*domain.CompanyOverview, error) {
	var raw rawOverview
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.NewTransport(symbol, err)
	}

	if raw.Symbol == "" && raw.Name == "" {
		return nil, apperrors.NewEmptyResult(symbol, string(domain.ResourceOverview))
	}

	return &domain.CompanyOverview{
		Symbol:      raw.Symbol,
		Name:        raw.Name,
		Description: raw.Description,
		Exchange:    raw.Exchange,
		Currency:    raw.Currency,
		Sector:      raw.Sector,
		Industry:    raw.Industry,

		MarketCap:         domain.ParseNumeric(raw.MarketCap),
		EBITDA:            domain.ParseNumeric(raw.EBITDA),
		PERatio:           domain.ParseNumeric(raw.PERatio),
		ForwardPE:         domain.ParseNumeric(raw.ForwardPE),
		TrailingPE:        domain.ParseNumeric(raw.TrailingPE),
		PriceToBook:       domain.ParseNumeric(raw.PriceToBook),
		PriceToSales:      domain.ParseNumeric(raw.PriceToSales),
		EVToRevenue:       domain.ParseNumeric(raw.EVToRevenue),
		EVToEBITDA:        domain.ParseNumeric(raw.EVToEBITDA),
		EPS:               domain.ParseNumeric(raw.EPS),
		DividendYield:     domain.ParseNumeric(raw.DividendYield),
		SharesOutstanding: domain.ParseNumeric(raw.SharesOutstanding),
		ReturnOnEquity:    domain.ParseNumeric(raw.ReturnOnEquity),
		ReturnOnAssets:    domain.ParseNumeric(raw.ReturnOnAssets),
		RevenueTTM:        domain.ParseNumeric(raw.RevenueTTM),
		GrossProfitTTM:    domain.ParseNumeric(raw.GrossProfitTTM),
		ProfitMargin:      domain.ParseNumeric(raw.ProfitMargin),
		Beta:              domain.ParseNumeric(raw.Beta),
		High52Week:        domain.ParseNumeric(raw.High52Week),
		Low52Week:         domain.ParseNumeric(raw.Low52Week),
	}, nil
}

func normalizeStatement(symbol string, stype domain.StatementType, resource domain.Resource, body []byte) (*domain.Statement, error) {
	var raw rawStatement
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.NewTransport(symbol, err)
	}

	if raw.Symbol == "" && len(raw.AnnualReports) == 0 && len(raw.QuarterlyReports) == 0 {
		return nil, apperrors.NewEmptyResult(symbol, string(resource))
	}

	stmt := &domain.Statement{
		Symbol:           raw.Symbol,
		Type:             stype,
		AnnualReports:    make([]domain.StatementReport, 0, len(raw.AnnualReports)),
		QuarterlyReports: make([]domain.StatementReport, 0, len(raw.QuarterlyReports)),
	}
	if stmt.Symbol == "" {
		stmt.Symbol = symbol
	}

	for _, row := range raw.AnnualReports {
		stmt.AnnualReports = append(stmt.AnnualReports, newReport(row))
	}
	for _, row := range raw.QuarterlyReports {
		stmt.QuarterlyReports = append(stmt.QuarterlyReports, newReport(row))
	}

	return stmt, nil
}

// knownLineItems are the provider keys lifted into typed report fields.
var knownLineItems = map[string]struct{}{
	domain.FieldTotalRevenue:            {},
	domain.FieldGrossProfit:             {},
	domain.FieldCostOfRevenue:           {},
	domain.FieldOperatingIncome:         {},
	domain.FieldEBITDA:                  {},
	domain.FieldIncomeBeforeTax:         {},
	domain.FieldIncomeTaxExpense:        {},
	domain.FieldNetIncome:               {},
	domain.FieldTotalAssets:             {},
	domain.FieldTotalCurrentAssets:      {},
	domain.FieldTotalCurrentLiabilities: {},
	domain.FieldTotalLiabilities:        {},
	domain.FieldTotalShareholderEquity:  {},
	domain.FieldLongTermDebt:            {},
	domain.FieldCashAndEquivalents:      {},
	domain.FieldOperatingCashflow:       {},
	domain.FieldCapitalExpenditures:     {},
	domain.FieldDividendPayout:          {},
}

// newReport splits one raw statement row into typed fields plus the Extra
// side map for anything the struct does not model.
func newReport(row map[string]string) domain.StatementReport {
	report := domain.StatementReport{
		FiscalDateEnding: row["fiscalDateEnding"],
		ReportedCurrency: row["reportedCurrency"],

		TotalRevenue:            row[domain.FieldTotalRevenue],
		GrossProfit:             row[domain.FieldGrossProfit],
		CostOfRevenue:           row[domain.FieldCostOfRevenue],
		OperatingIncome:         row[domain.FieldOperatingIncome],
		EBITDA:                  row[domain.FieldEBITDA],
		IncomeBeforeTax:         row[domain.FieldIncomeBeforeTax],
		IncomeTaxExpense:        row[domain.FieldIncomeTaxExpense],
		NetIncome:               row[domain.FieldNetIncome],
		TotalAssets:             row[domain.FieldTotalAssets],
		TotalCurrentAssets:      row[domain.FieldTotalCurrentAssets],
		TotalCurrentLiabilities: row[domain.FieldTotalCurrentLiabilities],
		TotalLiabilities:        row[domain.FieldTotalLiabilities],
		TotalShareholderEquity:  row[domain.FieldTotalShareholderEquity],
		LongTermDebt:            row[domain.FieldLongTermDebt],
		CashAndEquivalents:      row[domain.FieldCashAndEquivalents],
		OperatingCashflow:       row[domain.FieldOperatingCashflow],
		CapitalExpenditures:     row[domain.FieldCapitalExpenditures],
		DividendPayout:          row[domain.FieldDividendPayout],
	}

	for key, value := range row {
		if key == "fiscalDateEnding" || key == "reportedCurrency" {
			continue
		}
		if _, known := knownLineItems[key]; known {
			continue
		}
		if report.Extra == nil {
			report.Extra = make(map[string]string)
		}
		report.Extra[key] = value
	}

	return report
}

func normalizePrices(symbol, interval string, resource domain.Resource, body []byte) (*domain.PriceSeries, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, apperrors.NewTransport(symbol, err)
	}

	// The bar-map key varies by endpoint; find the one starting with
	// "Time Series".
	var barsRaw json.RawMessage
	for key, value := range top {
		if strings.HasPrefix(key, "Time Series") {
			barsRaw = value
			break
		}
	}
	if barsRaw == nil {
		return nil, apperrors.NewEmptyResult(symbol, string(resource))
	}

	var bars map[string]map[string]string
	if err := json.Unmarshal(barsRaw, &bars); err != nil {
		return nil, apperrors.NewTransport(symbol, err)
	}
	if len(bars) == 0 {
		return nil, apperrors.NewEmptyResult(symbol, string(resource))
	}

	series := &domain.PriceSeries{
		Symbol:   symbol,
		Interval: interval,
		Points:   make([]domain.PricePoint, 0, len(bars)),
	}

	for date, bar := range bars {
		point := domain.PricePoint{
			Date:          date,
			Open:          domain.ParseNumeric(bar[barOpen]),
			High:          domain.ParseNumeric(bar[barHigh]),
			Low:           domain.ParseNumeric(bar[barLow]),
			Close:         domain.ParseNumeric(bar[barClose]),
			AdjustedClose: domain.ParseNumeric(bar[barAdjustedClose]),
		}
		// Volume field naming varies by endpoint.
		if v, ok := bar[barVolumeDaily]; ok {
			point.Volume = domain.ParseNumeric(v)
		} else {
			point.Volume = domain.ParseNumeric(bar[barVolumeAlt])
		}
		// No distinct adjusted field on this endpoint: adjusted == close.
		if point.AdjustedClose == nil {
			point.AdjustedClose = point.Close
		}
		series.Points = append(series.Points, point)
	}

	domain.SortPointsAscending(series.Points)
	return series, nil
}

func normalizeEarnings(symbol string, body []byte) (*domain.Earnings, error) {
	var raw rawEarnings
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.NewTransport(symbol, err)
	}

	if raw.Symbol == "" && len(raw.AnnualEarnings) == 0 && len(raw.QuarterlyEarnings) == 0 {
		return nil, apperrors.NewEmptyResult(symbol, string(domain.ResourceEarnings))
	}

	earnings := &domain.Earnings{
		Symbol:            raw.Symbol,
		AnnualEarnings:    make([]domain.AnnualEarning, 0, len(raw.AnnualEarnings)),
		QuarterlyEarnings: make([]domain.QuarterlyEarning, 0, len(raw.QuarterlyEarnings)),
	}
	if earnings.Symbol == "" {
		earnings.Symbol = symbol
	}

	for _, row := range raw.AnnualEarnings {
		earnings.AnnualEarnings = append(earnings.AnnualEarnings, domain.AnnualEarning{
			FiscalDateEnding: row.FiscalDateEnding,
			ReportedEPS:      domain.ParseNumeric(row.ReportedEPS),
		})
	}
	for _, row := range raw.QuarterlyEarnings {
		earnings.QuarterlyEarnings = append(earnings.QuarterlyEarnings, domain.QuarterlyEarning{
			FiscalDateEnding:   row.FiscalDateEnding,
			ReportedDate:       row.ReportedDate,
			ReportedEPS:        domain.ParseNumeric(row.ReportedEPS),
			EstimatedEPS:       domain.ParseNumeric(row.EstimatedEPS),
			Surprise:           domain.ParseNumeric(row.Surprise),
			SurprisePercentage: domain.ParseNumeric(row.SurprisePercentage),
		})
	}

	return earnings, nil
}
