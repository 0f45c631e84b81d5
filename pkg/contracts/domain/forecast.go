package domain

// ForecastInputs are the user-adjustable assumptions for a one-period
// income-statement projection. Percentage fields are whole percentages
// (25 means 25%). Inputs are plain values, not pointers: the forecast
// boundary deliberately substitutes defaults instead of propagating nil,
// so a forecast can always be produced (contrast with the metrics engine,
// which propagates unknowns).
type ForecastInputs struct {
	RevenueGrowth   float64 `json:"revenue_growth" validate:"gte=-100,lte=1000"`
	GrossMargin     float64 `json:"gross_margin" validate:"gte=-100,lte=100"`
	OperatingMargin float64 `json:"operating_margin" validate:"gte=-100,lte=100"`
	NetMargin       float64 `json:"net_margin" validate:"gte=-100,lte=100"`
	TaxRate         float64 `json:"tax_rate" validate:"gte=0,lte=100"`
	PEMultiple      float64 `json:"pe_multiple" validate:"gte=0"`

	BaseRevenue       float64 `json:"base_revenue" validate:"gte=0"`
	SharesOutstanding float64 `json:"shares_outstanding" validate:"gte=0"`
}

// ForecastOutputs are the projected figures derived from ForecastInputs.
// Outputs are a pure function of inputs and always concrete; degenerate
// inputs (zero shares) produce zeros rather than unknowns.
type ForecastOutputs struct {
	ProjectedRevenue float64 `json:"projected_revenue"`
	GrossProfit      float64 `json:"gross_profit"`
	OperatingIncome  float64 `json:"operating_income"`
	NetIncome        float64 `json:"net_income"`
	EPS              float64 `json:"eps"`
	ImpliedPrice     float64 `json:"implied_price"`
}
