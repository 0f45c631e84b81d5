package domain

// AnnualEarning is one fiscal-year EPS record.
type AnnualEarning struct {
	FiscalDateEnding string   `json:"fiscal_date_ending"`
	ReportedEPS      *float64 `json:"reported_eps"`
}

// QuarterlyEarning is one quarterly EPS record with the analyst estimate
// and the reported surprise against it.
type QuarterlyEarning struct {
	FiscalDateEnding   string   `json:"fiscal_date_ending"`
	ReportedDate       string   `json:"reported_date,omitempty"`
	ReportedEPS        *float64 `json:"reported_eps"`
	EstimatedEPS       *float64 `json:"estimated_eps"`
	Surprise           *float64 `json:"surprise"`
	SurprisePercentage *float64 `json:"surprise_percentage"`
}

// Earnings is the earnings history document for one symbol.
type Earnings struct {
	Symbol            string             `json:"symbol"`
	AnnualEarnings    []AnnualEarning    `json:"annual_earnings"`
	QuarterlyEarnings []QuarterlyEarning `json:"quarterly_earnings"`
}
