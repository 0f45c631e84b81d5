// Package forecast seeds and evaluates a single-period earnings
// projection. Seeding tolerates arbitrarily sparse fundamentals by
// substituting conservative defaults, so a projection is always
// computable; the defaults are visible in the returned inputs and a
// caller can override any of them before projecting.
package forecast

import (
	"stocklens/pkg/contracts/domain"
)

// Fallbacks applied when the underlying fundamentals cannot supply a
// seed value.
const (
	defaultTaxRate     = 25.0
	defaultPEMultiple  = 20.0
	defaultShares      = 1e9
	defaultGrowth      = 0.0
	defaultMarginFloor = 0.0
)

// DefaultInputs seeds projection assumptions from the latest annual
// income report and the company overview. Either source may be nil or
// empty; every hole is patched with a deliberate default rather than
// propagated.
func DefaultInputs(income *domain.Statement, overview *domain.CompanyOverview) domain.ForecastInputs {
	inputs := domain.ForecastInputs{
		RevenueGrowth:     defaultGrowth,
		GrossMargin:       defaultMarginFloor,
		OperatingMargin:   defaultMarginFloor,
		NetMargin:         defaultMarginFloor,
		TaxRate:           defaultTaxRate,
		PEMultiple:        defaultPEMultiple,
		SharesOutstanding: defaultShares,
	}

	report := latestAnnual(income)
	if report != nil {
		if revenue := report.Value(domain.FieldTotalRevenue); revenue != nil && *revenue > 0 {
			inputs.BaseRevenue = *revenue
			inputs.GrossMargin = marginOrZero(report.Value(domain.FieldGrossProfit), *revenue)
			inputs.OperatingMargin = marginOrZero(report.Value(domain.FieldOperatingIncome), *revenue)
			inputs.NetMargin = marginOrZero(report.Value(domain.FieldNetIncome), *revenue)
		}

		// Derived only from positive pre-tax income; a loss year keeps
		// the 25% default. The ratio is taken as-is, so a tax credit
		// yields a negative rate and an unusual filing can exceed 100.
		pretax := report.Value(domain.FieldIncomeBeforeTax)
		taxExpense := report.Value(domain.FieldIncomeTaxExpense)
		if pretax != nil && taxExpense != nil && *pretax > 0 {
			inputs.TaxRate = *taxExpense / *pretax * 100
		}
	}

	if overview != nil {
		if pe := overview.PreferredPE(); pe != nil && *pe > 0 {
			inputs.PEMultiple = *pe
		}
		if shares := overview.SharesOutstanding; shares != nil && *shares > 0 {
			inputs.SharesOutstanding = *shares
		}
	}

	return inputs
}

// Project evaluates one forward period from the given assumptions.
// Margins and rates are percentages of projected revenue; operating
// income doubles as the pre-tax base, so the net income line reflects
// the tax assumption rather than the seeded net margin.
func Project(inputs domain.ForecastInputs) domain.ForecastOutputs {
	var out domain.ForecastOutputs

	out.ProjectedRevenue = inputs.BaseRevenue * (1 + inputs.RevenueGrowth/100)
	out.GrossProfit = out.ProjectedRevenue * inputs.GrossMargin / 100
	out.OperatingIncome = out.ProjectedRevenue * inputs.OperatingMargin / 100

	incomeBeforeTax := out.OperatingIncome
	out.NetIncome = incomeBeforeTax * (1 - inputs.TaxRate/100)

	if inputs.SharesOutstanding > 0 {
		out.EPS = out.NetIncome / inputs.SharesOutstanding
	}
	out.ImpliedPrice = out.EPS * inputs.PEMultiple

	return out
}

// Upside computes the percentage gap between the implied price and the
// current market price. Nil when the current price is unknown or zero.
func Upside(impliedPrice float64, currentPrice *float64) *float64 {
	if currentPrice == nil || *currentPrice == 0 {
		return nil
	}
	upside := (impliedPrice - *currentPrice) / *currentPrice * 100
	return &upside
}

func marginOrZero(numerator *float64, revenue float64) float64 {
	if numerator == nil || revenue <= 0 {
		return 0
	}
	return *numerator / revenue * 100
}

func latestAnnual(income *domain.Statement) *domain.StatementReport {
	if income == nil {
		return nil
	}
	reports := domain.SortReportsDescending(income.AnnualReports)
	if len(reports) == 0 {
		return nil
	}
	return &reports[0]
}
