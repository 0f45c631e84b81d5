package domain

// Derived metric sets. Each is a fixed set of nullable figures computed on
// demand from normalized statements (or the overview); nil means the inputs
// needed for that figure were unknown or degenerate (zero denominator).
// None of these are persisted; they are recomputed per request.

// GrowthMetrics holds period-over-period and compound growth rates,
// all expressed as percentages.
type GrowthMetrics struct {
	RevenueYoY         *float64 `json:"revenue_yoy"`
	RevenueCAGR3Y      *float64 `json:"revenue_cagr_3y"`
	RevenueCAGR5Y      *float64 `json:"revenue_cagr_5y"`
	NetIncomeYoY       *float64 `json:"net_income_yoy"`
	NetIncomeCAGR3Y    *float64 `json:"net_income_cagr_3y"`
	NetIncomeCAGR5Y    *float64 `json:"net_income_cagr_5y"`
	OperatingIncomeYoY *float64 `json:"operating_income_yoy"`
}

// ProfitabilityMetrics holds margin and return ratios (percentages) from
// the single latest report of the selected period type.
type ProfitabilityMetrics struct {
	GrossMargin     *float64 `json:"gross_margin"`
	OperatingMargin *float64 `json:"operating_margin"`
	NetMargin       *float64 `json:"net_margin"`
	EBITDAMargin    *float64 `json:"ebitda_margin"`
	ReturnOnEquity  *float64 `json:"return_on_equity"`
	ReturnOnAssets  *float64 `json:"return_on_assets"`
}

// EfficiencyMetrics holds asset-utilization ratios from the latest report.
type EfficiencyMetrics struct {
	AssetTurnover            *float64 `json:"asset_turnover"`
	WorkingCapitalEfficiency *float64 `json:"working_capital_efficiency"`
}

// ValuationMetrics holds market-pricing ratios sourced from the company
// overview snapshot.
type ValuationMetrics struct {
	MarketCap     *float64 `json:"market_cap"`
	PERatio       *float64 `json:"pe_ratio"`
	ForwardPE     *float64 `json:"forward_pe"`
	PriceToBook   *float64 `json:"price_to_book"`
	PriceToSales  *float64 `json:"price_to_sales"`
	EVToRevenue   *float64 `json:"ev_to_revenue"`
	EVToEBITDA    *float64 `json:"ev_to_ebitda"`
	DividendYield *float64 `json:"dividend_yield"`
}
