package domain

// CompanyOverview is the normalized company profile for one ticker symbol.
// Descriptive fields are plain strings; every ratio or valuation figure is
// nullable because the provider reports them as loosely typed strings that
// may be absent or "None" for smaller listings.
//
// An overview is an immutable snapshot: it is rebuilt on every fetch and
// carries no cross-request identity.
type CompanyOverview struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Exchange    string `json:"exchange,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Industry    string `json:"industry,omitempty"`

	MarketCap         *float64 `json:"market_cap"`
	EBITDA            *float64 `json:"ebitda"`
	PERatio           *float64 `json:"pe_ratio"`
	ForwardPE         *float64 `json:"forward_pe"`
	TrailingPE        *float64 `json:"trailing_pe"`
	PriceToBook       *float64 `json:"price_to_book"`
	PriceToSales      *float64 `json:"price_to_sales"`
	EVToRevenue       *float64 `json:"ev_to_revenue"`
	EVToEBITDA        *float64 `json:"ev_to_ebitda"`
	EPS               *float64 `json:"eps"`
	DividendYield     *float64 `json:"dividend_yield"`
	SharesOutstanding *float64 `json:"shares_outstanding"`
	ReturnOnEquity    *float64 `json:"return_on_equity"`
	ReturnOnAssets    *float64 `json:"return_on_assets"`
	RevenueTTM        *float64 `json:"revenue_ttm"`
	GrossProfitTTM    *float64 `json:"gross_profit_ttm"`
	ProfitMargin      *float64 `json:"profit_margin"`
	Beta              *float64 `json:"beta"`
	High52Week        *float64 `json:"high_52_week"`
	Low52Week         *float64 `json:"low_52_week"`
}

// PreferredPE returns the first populated trailing-side multiple
// (TrailingPE, then the provider's generic PERatio), else the forward
// P/E. Used by the forecast engine to seed its default multiple.
func (o *CompanyOverview) PreferredPE() *float64 {
	if o == nil {
		return nil
	}
	if o.TrailingPE != nil {
		return o.TrailingPE
	}
	if o.PERatio != nil {
		return o.PERatio
	}
	return o.ForwardPE
}
