package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocklens/pkg/contracts/domain"
)

func f(v float64) *float64 { return &v }

func TestDefaultInputsFromFundamentals(t *testing.T) {
	income := &domain.Statement{
		Symbol: "AAPL",
		Type:   domain.StatementIncome,
		AnnualReports: []domain.StatementReport{
			{
				FiscalDateEnding: "2023-12-31",
				TotalRevenue:     "100",
				GrossProfit:      "10",
			},
			{
				FiscalDateEnding: "2024-12-31",
				TotalRevenue:     "200",
				GrossProfit:      "80",
				OperatingIncome:  "50",
				NetIncome:        "36",
				IncomeBeforeTax:  "48",
				IncomeTaxExpense: "12",
			},
		},
	}
	overview := &domain.CompanyOverview{
		Symbol:            "AAPL",
		PERatio:           f(30),
		ForwardPE:         f(28),
		SharesOutstanding: f(5e8),
	}

	inputs := DefaultInputs(income, overview)

	assert.InDelta(t, 200, inputs.BaseRevenue, 0.01)
	assert.InDelta(t, 40, inputs.GrossMargin, 0.01)
	assert.InDelta(t, 25, inputs.OperatingMargin, 0.01)
	assert.InDelta(t, 18, inputs.NetMargin, 0.01)
	assert.InDelta(t, 25, inputs.TaxRate, 0.01)
	// Trailing P/E preferred over forward.
	assert.InDelta(t, 30, inputs.PEMultiple, 0.01)
	assert.InDelta(t, 5e8, inputs.SharesOutstanding, 1)
	assert.InDelta(t, 0, inputs.RevenueGrowth, 0.001)
}

func TestDefaultInputsSparseData(t *testing.T) {
	inputs := DefaultInputs(nil, nil)

	assert.Zero(t, inputs.BaseRevenue)
	assert.Zero(t, inputs.GrossMargin)
	assert.Zero(t, inputs.OperatingMargin)
	assert.Zero(t, inputs.NetMargin)
	assert.InDelta(t, 25, inputs.TaxRate, 0.01)
	assert.InDelta(t, 20, inputs.PEMultiple, 0.01)
	assert.InDelta(t, 1e9, inputs.SharesOutstanding, 1)
}

func TestDefaultInputsNonPositiveRevenue(t *testing.T) {
	income := &domain.Statement{
		Symbol: "AAPL",
		Type:   domain.StatementIncome,
		AnnualReports: []domain.StatementReport{
			{
				FiscalDateEnding: "2024-12-31",
				TotalRevenue:     "-50",
				GrossProfit:      "80",
			},
		},
	}

	inputs := DefaultInputs(income, nil)

	assert.Zero(t, inputs.BaseRevenue)
	assert.Zero(t, inputs.GrossMargin)
}

func TestDefaultInputsTaxRateFallback(t *testing.T) {
	tests := []struct {
		name     string
		pretax   string
		tax      string
		wantRate float64
	}{
		{name: "derived", pretax: "100", tax: "21", wantRate: 21},
		{name: "zero pretax", pretax: "0", tax: "21", wantRate: 25},
		{name: "negative pretax", pretax: "-100", tax: "21", wantRate: 25},
		{name: "loss year with tax credit", pretax: "-100", tax: "-30", wantRate: 25},
		{name: "missing tax", pretax: "100", tax: "", wantRate: 25},
		{name: "tax credit yields negative rate", pretax: "100", tax: "-10", wantRate: -10},
		{name: "ratio above 100 kept", pretax: "10", tax: "21", wantRate: 210},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			income := &domain.Statement{
				Symbol: "AAPL",
				Type:   domain.StatementIncome,
				AnnualReports: []domain.StatementReport{
					{
						FiscalDateEnding: "2024-12-31",
						TotalRevenue:     "200",
						IncomeBeforeTax:  tt.pretax,
						IncomeTaxExpense: tt.tax,
					},
				},
			}

			inputs := DefaultInputs(income, nil)
			assert.InDelta(t, tt.wantRate, inputs.TaxRate, 0.01)
		})
	}
}

func TestDefaultInputsPEFallbacks(t *testing.T) {
	// Only a forward P/E present.
	inputs := DefaultInputs(nil, &domain.CompanyOverview{Symbol: "AAPL", ForwardPE: f(18)})
	assert.InDelta(t, 18, inputs.PEMultiple, 0.01)

	// A non-positive P/E is as useless as a missing one.
	inputs = DefaultInputs(nil, &domain.CompanyOverview{Symbol: "AAPL", PERatio: f(-5)})
	assert.InDelta(t, 20, inputs.PEMultiple, 0.01)
}

func TestProject(t *testing.T) {
	inputs := domain.ForecastInputs{
		RevenueGrowth:     10,
		GrossMargin:       40,
		OperatingMargin:   25,
		TaxRate:           20,
		PEMultiple:        30,
		BaseRevenue:       1000,
		SharesOutstanding: 100,
	}

	out := Project(inputs)

	assert.InDelta(t, 1100, out.ProjectedRevenue, 0.01)
	assert.InDelta(t, 440, out.GrossProfit, 0.01)
	assert.InDelta(t, 275, out.OperatingIncome, 0.01)
	assert.InDelta(t, 220, out.NetIncome, 0.01)
	assert.InDelta(t, 2.2, out.EPS, 0.001)
	assert.InDelta(t, 66, out.ImpliedPrice, 0.01)
}

func TestProjectZeroGrowthRoundTrip(t *testing.T) {
	out := Project(domain.ForecastInputs{BaseRevenue: 500, SharesOutstanding: 1})
	assert.InDelta(t, 500, out.ProjectedRevenue, 0.001)
}

func TestProjectZeroShares(t *testing.T) {
	out := Project(domain.ForecastInputs{
		BaseRevenue:     1000,
		OperatingMargin: 25,
		PEMultiple:      30,
	})

	assert.Zero(t, out.EPS)
	assert.Zero(t, out.ImpliedPrice)
}

func TestUpside(t *testing.T) {
	got := Upside(120, f(100))
	require.NotNil(t, got)
	assert.InDelta(t, 20, *got, 0.01)

	got = Upside(80, f(100))
	require.NotNil(t, got)
	assert.InDelta(t, -20, *got, 0.01)

	assert.Nil(t, Upside(120, nil))
	assert.Nil(t, Upside(120, f(0)))
}
