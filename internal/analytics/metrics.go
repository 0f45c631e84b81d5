// Package analytics computes derived metrics and time series from
// normalized financial statements. Every function is pure, reentrant,
// and total over nullable inputs: a nil operand or a degenerate
// denominator yields nil, never a panic or a NaN leak.
package analytics

import (
	"math"

	"stocklens/pkg/contracts/domain"
)

// sanitize filters non-finite computation results to nil.
func sanitize(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// YoYGrowth computes (current-previous)/previous as a percentage. Nil when
// either operand is unknown or previous is zero.
func YoYGrowth(current, previous *float64) *float64 {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}
	return sanitize((*current - *previous) / *previous * 100)
}

// Margin computes numerator/base as a percentage. Nil when either operand
// is unknown or base is zero.
func Margin(numerator, base *float64) *float64 {
	if numerator == nil || base == nil || *base == 0 {
		return nil
	}
	return sanitize(*numerator / *base * 100)
}

// CAGR computes the compound annual growth rate from start to end over
// the given number of periods, as a percentage. Nil when an operand is
// unknown, start or years is zero, or the base ratio is degenerate (for
// example a sign flip producing a non-finite root).
func CAGR(start, end *float64, years float64) *float64 {
	if start == nil || end == nil || *start == 0 || years == 0 {
		return nil
	}
	return sanitize((math.Pow(*end / *start, 1/years) - 1) * 100)
}

// ReturnOnEquity computes net income over shareholder equity as a
// percentage.
func ReturnOnEquity(netIncome, equity *float64) *float64 {
	return Margin(netIncome, equity)
}

// ReturnOnAssets computes net income over total assets as a percentage.
func ReturnOnAssets(netIncome, assets *float64) *float64 {
	return Margin(netIncome, assets)
}

// AssetTurnover computes revenue over total assets. Unlike Margin this is
// a plain ratio, defined only for strictly positive total assets.
func AssetTurnover(revenue, totalAssets *float64) *float64 {
	if revenue == nil || totalAssets == nil || *totalAssets <= 0 {
		return nil
	}
	return sanitize(*revenue / *totalAssets)
}

// WorkingCapitalEfficiency computes revenue over working capital
// (current assets minus current liabilities), defined only when that
// difference is non-zero.
func WorkingCapitalEfficiency(revenue, currentAssets, currentLiabilities *float64) *float64 {
	if revenue == nil || currentAssets == nil || currentLiabilities == nil {
		return nil
	}
	workingCapital := *currentAssets - *currentLiabilities
	if workingCapital == 0 {
		return nil
	}
	return sanitize(*revenue / workingCapital)
}

// Growth aggregates growth metrics from an income statement for the given
// period type. Historical rows are selected by position after sorting
// newest first: index 1 is "one period back", 3 is "three back", 5 is
// "five back". This is a positional approximation of "years ago" that
// assumes one report per period with no gaps; a missing fiscal year makes
// the computed horizon silently longer.
func Growth(income *domain.Statement, period domain.PeriodType) *domain.GrowthMetrics {
	metrics := &domain.GrowthMetrics{}
	if income == nil {
		return metrics
	}

	reports := domain.SortReportsDescending(income.Reports(period))
	at := func(i int, field string) *float64 {
		if i >= len(reports) {
			return nil
		}
		return reports[i].Value(field)
	}

	rev0 := at(0, domain.FieldTotalRevenue)
	ni0 := at(0, domain.FieldNetIncome)

	metrics.RevenueYoY = YoYGrowth(rev0, at(1, domain.FieldTotalRevenue))
	metrics.RevenueCAGR3Y = CAGR(at(3, domain.FieldTotalRevenue), rev0, 3)
	metrics.RevenueCAGR5Y = CAGR(at(5, domain.FieldTotalRevenue), rev0, 5)
	metrics.NetIncomeYoY = YoYGrowth(ni0, at(1, domain.FieldNetIncome))
	metrics.NetIncomeCAGR3Y = CAGR(at(3, domain.FieldNetIncome), ni0, 3)
	metrics.NetIncomeCAGR5Y = CAGR(at(5, domain.FieldNetIncome), ni0, 5)
	metrics.OperatingIncomeYoY = YoYGrowth(at(0, domain.FieldOperatingIncome), at(1, domain.FieldOperatingIncome))

	return metrics
}

// Profitability aggregates margin and return ratios from the single
// latest income and balance reports of the selected period type.
func Profitability(income, balance *domain.Statement, period domain.PeriodType) *domain.ProfitabilityMetrics {
	metrics := &domain.ProfitabilityMetrics{}

	incomeReport := latest(income, period)
	if incomeReport != nil {
		revenue := incomeReport.Value(domain.FieldTotalRevenue)
		metrics.GrossMargin = Margin(incomeReport.Value(domain.FieldGrossProfit), revenue)
		metrics.OperatingMargin = Margin(incomeReport.Value(domain.FieldOperatingIncome), revenue)
		metrics.NetMargin = Margin(incomeReport.Value(domain.FieldNetIncome), revenue)
		metrics.EBITDAMargin = Margin(incomeReport.Value(domain.FieldEBITDA), revenue)
	}

	balanceReport := latest(balance, period)
	if incomeReport != nil && balanceReport != nil {
		netIncome := incomeReport.Value(domain.FieldNetIncome)
		metrics.ReturnOnEquity = ReturnOnEquity(netIncome, balanceReport.Value(domain.FieldTotalShareholderEquity))
		metrics.ReturnOnAssets = ReturnOnAssets(netIncome, balanceReport.Value(domain.FieldTotalAssets))
	}

	return metrics
}

// Efficiency aggregates asset-utilization ratios from the single latest
// income and balance reports of the selected period type.
func Efficiency(income, balance *domain.Statement, period domain.PeriodType) *domain.EfficiencyMetrics {
	metrics := &domain.EfficiencyMetrics{}

	incomeReport := latest(income, period)
	balanceReport := latest(balance, period)
	if incomeReport == nil || balanceReport == nil {
		return metrics
	}

	revenue := incomeReport.Value(domain.FieldTotalRevenue)
	metrics.AssetTurnover = AssetTurnover(revenue, balanceReport.Value(domain.FieldTotalAssets))
	metrics.WorkingCapitalEfficiency = WorkingCapitalEfficiency(revenue,
		balanceReport.Value(domain.FieldTotalCurrentAssets),
		balanceReport.Value(domain.FieldTotalCurrentLiabilities))

	return metrics
}

// Valuation lifts market-pricing ratios out of the overview snapshot.
func Valuation(overview *domain.CompanyOverview) *domain.ValuationMetrics {
	metrics := &domain.ValuationMetrics{}
	if overview == nil {
		return metrics
	}
	metrics.MarketCap = overview.MarketCap
	metrics.PERatio = overview.PERatio
	metrics.ForwardPE = overview.ForwardPE
	metrics.PriceToBook = overview.PriceToBook
	metrics.PriceToSales = overview.PriceToSales
	metrics.EVToRevenue = overview.EVToRevenue
	metrics.EVToEBITDA = overview.EVToEBITDA
	metrics.DividendYield = overview.DividendYield
	return metrics
}

// latest returns the newest report of the selected period type, or nil.
func latest(stmt *domain.Statement, period domain.PeriodType) *domain.StatementReport {
	if stmt == nil {
		return nil
	}
	reports := domain.SortReportsDescending(stmt.Reports(period))
	if len(reports) == 0 {
		return nil
	}
	return &reports[0]
}
