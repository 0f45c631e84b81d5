package provider

// Raw payload shapes as the provider delivers them. Every numeric field is
// a string; the normalizer is the only consumer.

// rawOverview mirrors the provider's company-overview payload.
type rawOverview struct {
	Symbol            string `json:"Symbol"`
	Name              string `json:"Name"`
	Description       string `json:"Description"`
	Exchange          string `json:"Exchange"`
	Currency          string `json:"Currency"`
	Sector            string `json:"Sector"`
	Industry          string `json:"Industry"`
	MarketCap         string `json:"MarketCapitalization"`
	EBITDA            string `json:"EBITDA"`
	PERatio           string `json:"PERatio"`
	ForwardPE         string `json:"ForwardPE"`
	TrailingPE        string `json:"TrailingPE"`
	PriceToBook       string `json:"PriceToBookRatio"`
	PriceToSales      string `json:"PriceToSalesRatioTTM"`
	EVToRevenue       string `json:"EVToRevenue"`
	EVToEBITDA        string `json:"EVToEBITDA"`
	EPS               string `json:"EPS"`
	DividendYield     string `json:"DividendYield"`
	SharesOutstanding string `json:"SharesOutstanding"`
	ReturnOnEquity    string `json:"ReturnOnEquityTTM"`
	ReturnOnAssets    string `json:"ReturnOnAssetsTTM"`
	RevenueTTM        string `json:"RevenueTTM"`
	GrossProfitTTM    string `json:"GrossProfitTTM"`
	ProfitMargin      string `json:"ProfitMargin"`
	Beta              string `json:"Beta"`
	High52Week        string `json:"52WeekHigh"`
	Low52Week         string `json:"52WeekLow"`
}

// rawStatement mirrors the statement documents (income, balance, cash
// flow). Rows arrive as open-ended string maps; the normalizer splits
// known line items from extras.
type rawStatement struct {
	Symbol           string              `json:"symbol"`
	AnnualReports    []map[string]string `json:"annualReports"`
	QuarterlyReports []map[string]string `json:"quarterlyReports"`
}

// rawEarnings mirrors the earnings history payload.
type rawEarnings struct {
	Symbol            string                `json:"symbol"`
	AnnualEarnings    []rawAnnualEarning    `json:"annualEarnings"`
	QuarterlyEarnings []rawQuarterlyEarning `json:"quarterlyEarnings"`
}

type rawAnnualEarning struct {
	FiscalDateEnding string `json:"fiscalDateEnding"`
	ReportedEPS      string `json:"reportedEPS"`
}

type rawQuarterlyEarning struct {
	FiscalDateEnding   string `json:"fiscalDateEnding"`
	ReportedDate       string `json:"reportedDate"`
	ReportedEPS        string `json:"reportedEPS"`
	EstimatedEPS       string `json:"estimatedEPS"`
	Surprise           string `json:"surprise"`
	SurprisePercentage string `json:"surprisePercentage"`
}

// Price-series payloads have no fixed schema: the top-level key naming the
// bar map varies by endpoint ("Time Series (Daily)", "Time Series (5min)",
// ...), and each bar is a map of numbered keys. The bar key constants
// below cover the two naming schemes the provider uses for volume.
const (
	barOpen          = "1. open"
	barHigh          = "2. high"
	barLow           = "3. low"
	barClose         = "4. close"
	barAdjustedClose = "5. adjusted close"
	barVolumeDaily   = "6. volume"
	barVolumeAlt     = "5. volume"
)
