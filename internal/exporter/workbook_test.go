package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stocklens/internal/analytics"
	"stocklens/internal/infrastructure"
	"stocklens/pkg/contracts/domain"
)

func TestWriteAnalysis(t *testing.T) {
	dir := t.TempDir()
	writer := NewWorkbookWriter(dir, infrastructure.GetLogger())

	report := &AnalysisReport{
		Symbol: "AAPL",
		Overview: &domain.CompanyOverview{
			Symbol:  "AAPL",
			Name:    "Apple Inc",
			Sector:  "Technology",
			PERatio: f(30),
		},
		Growth: &domain.GrowthMetrics{RevenueYoY: f(9.09)},
		Profitability: &domain.ProfitabilityMetrics{
			GrossMargin: f(40),
			NetMargin:   nil,
		},
		Efficiency: &domain.EfficiencyMetrics{AssetTurnover: f(0.5)},
		Valuation:  &domain.ValuationMetrics{MarketCap: f(3e12)},
		FreeCashFlow: []analytics.Point{
			{Date: "2023-12-31", Value: f(50)},
			{Date: "2024-12-31", Value: nil},
		},
		ForecastInputs:  domain.ForecastInputs{RevenueGrowth: 10, BaseRevenue: 1000, SharesOutstanding: 100, PEMultiple: 30, TaxRate: 21},
		ForecastOutputs: domain.ForecastOutputs{ProjectedRevenue: 1100, ImpliedPrice: 66},
		Upside:          f(-20),
	}

	require.NoError(t, writer.WriteAnalysis(report, "aapl_analysis.xlsx"))

	book, err := excelize.OpenFile(filepath.Join(dir, "aapl_analysis.xlsx"))
	require.NoError(t, err)
	defer book.Close()

	sheets := book.GetSheetList()
	assert.ElementsMatch(t, []string{"Overview", "Metrics", "Free Cash Flow", "Forecast"}, sheets)

	name, err := book.GetCellValue("Overview", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", name)

	rows, err := book.GetRows("Free Cash Flow")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2023-12-31", rows[1][0])
	assert.Equal(t, "50", rows[1][1])
	// A nil point leaves the cell blank.
	assert.Equal(t, "2024-12-31", rows[2][0])
	assert.True(t, len(rows[2]) == 1 || rows[2][1] == "")

	metrics, err := book.GetRows("Metrics")
	require.NoError(t, err)
	assert.Equal(t, []string{"Metric", "Value"}, metrics[0][:2])
}
