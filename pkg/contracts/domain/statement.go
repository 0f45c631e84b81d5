package domain

import "sort"

// StatementType identifies one of the three financial statement documents.
type StatementType string

const (
	StatementIncome   StatementType = "income"
	StatementBalance  StatementType = "balance"
	StatementCashFlow StatementType = "cashflow"
)

// PeriodType selects between annual and quarterly report families.
type PeriodType string

const (
	PeriodAnnual    PeriodType = "annual"
	PeriodQuarterly PeriodType = "quarterly"
)

// Canonical provider keys for statement line items. These are the exact
// key names the provider uses in its JSON payloads, and the names accepted
// by StatementReport.Raw and the series builder.
const (
	FieldTotalRevenue            = "totalRevenue"
	FieldGrossProfit             = "grossProfit"
	FieldCostOfRevenue           = "costOfRevenue"
	FieldOperatingIncome         = "operatingIncome"
	FieldEBITDA                  = "ebitda"
	FieldIncomeBeforeTax         = "incomeBeforeTax"
	FieldIncomeTaxExpense        = "incomeTaxExpense"
	FieldNetIncome               = "netIncome"
	FieldTotalAssets             = "totalAssets"
	FieldTotalCurrentAssets      = "totalCurrentAssets"
	FieldTotalCurrentLiabilities = "totalCurrentLiabilities"
	FieldTotalLiabilities        = "totalLiabilities"
	FieldTotalShareholderEquity  = "totalShareholderEquity"
	FieldLongTermDebt            = "longTermDebt"
	FieldCashAndEquivalents      = "cashAndCashEquivalentsAtCarryingValue"
	FieldOperatingCashflow       = "operatingCashflow"
	FieldCapitalExpenditures     = "capitalExpenditures"
	FieldDividendPayout          = "dividendPayout"
)

// StatementReport is one fiscal-period row of a financial statement.
// Line items keep the provider's raw string form ("" when absent) so that
// "unknown" survives normalization; callers go through Value/ParseNumeric
// to obtain nullable floats. Known line items are statically typed; anything
// else the provider sends lands in Extra, keyed by the provider's own key,
// to stay forward-compatible with schema drift.
type StatementReport struct {
	FiscalDateEnding string `json:"fiscal_date_ending"`
	ReportedCurrency string `json:"reported_currency,omitempty"`

	TotalRevenue            string `json:"total_revenue,omitempty"`
	GrossProfit             string `json:"gross_profit,omitempty"`
	CostOfRevenue           string `json:"cost_of_revenue,omitempty"`
	OperatingIncome         string `json:"operating_income,omitempty"`
	EBITDA                  string `json:"ebitda,omitempty"`
	IncomeBeforeTax         string `json:"income_before_tax,omitempty"`
	IncomeTaxExpense        string `json:"income_tax_expense,omitempty"`
	NetIncome               string `json:"net_income,omitempty"`
	TotalAssets             string `json:"total_assets,omitempty"`
	TotalCurrentAssets      string `json:"total_current_assets,omitempty"`
	TotalCurrentLiabilities string `json:"total_current_liabilities,omitempty"`
	TotalLiabilities        string `json:"total_liabilities,omitempty"`
	TotalShareholderEquity  string `json:"total_shareholder_equity,omitempty"`
	LongTermDebt            string `json:"long_term_debt,omitempty"`
	CashAndEquivalents      string `json:"cash_and_equivalents,omitempty"`
	OperatingCashflow       string `json:"operating_cashflow,omitempty"`
	CapitalExpenditures     string `json:"capital_expenditures,omitempty"`
	DividendPayout          string `json:"dividend_payout,omitempty"`

	Extra map[string]string `json:"extra,omitempty"`
}

// Raw returns the raw string for a line item by its canonical provider key.
// Unknown keys fall through to the Extra map; a missing item is "".
func (r *StatementReport) Raw(field string) string {
	switch field {
	case FieldTotalRevenue:
		return r.TotalRevenue
	case FieldGrossProfit:
		return r.GrossProfit
	case FieldCostOfRevenue:
		return r.CostOfRevenue
	case FieldOperatingIncome:
		return r.OperatingIncome
	case FieldEBITDA:
		return r.EBITDA
	case FieldIncomeBeforeTax:
		return r.IncomeBeforeTax
	case FieldIncomeTaxExpense:
		return r.IncomeTaxExpense
	case FieldNetIncome:
		return r.NetIncome
	case FieldTotalAssets:
		return r.TotalAssets
	case FieldTotalCurrentAssets:
		return r.TotalCurrentAssets
	case FieldTotalCurrentLiabilities:
		return r.TotalCurrentLiabilities
	case FieldTotalLiabilities:
		return r.TotalLiabilities
	case FieldTotalShareholderEquity:
		return r.TotalShareholderEquity
	case FieldLongTermDebt:
		return r.LongTermDebt
	case FieldCashAndEquivalents:
		return r.CashAndEquivalents
	case FieldOperatingCashflow:
		return r.OperatingCashflow
	case FieldCapitalExpenditures:
		return r.CapitalExpenditures
	case FieldDividendPayout:
		return r.DividendPayout
	}
	return r.Extra[field]
}

// Value parses the named line item into a nullable float.
func (r *StatementReport) Value(field string) *float64 {
	return ParseNumeric(r.Raw(field))
}

// Statement is one financial statement document for a symbol: ordered
// annual and quarterly report families sharing the same row shape.
// Report slices are read-only views once normalized.
type Statement struct {
	Symbol           string            `json:"symbol"`
	Type             StatementType     `json:"type"`
	AnnualReports    []StatementReport `json:"annual_reports"`
	QuarterlyReports []StatementReport `json:"quarterly_reports"`
}

// Reports selects the report family for the given period type.
func (s *Statement) Reports(period PeriodType) []StatementReport {
	if period == PeriodQuarterly {
		return s.QuarterlyReports
	}
	return s.AnnualReports
}

// SortReportsDescending returns a copy of reports ordered newest first by
// fiscal date. Dates are ISO 8601 strings, so lexical order is date order.
func SortReportsDescending(reports []StatementReport) []StatementReport {
	sorted := make([]StatementReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FiscalDateEnding > sorted[j].FiscalDateEnding
	})
	return sorted
}

// SortReportsAscending returns a copy of reports ordered oldest first by
// fiscal date.
func SortReportsAscending(reports []StatementReport) []StatementReport {
	sorted := make([]StatementReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FiscalDateEnding < sorted[j].FiscalDateEnding
	})
	return sorted
}
