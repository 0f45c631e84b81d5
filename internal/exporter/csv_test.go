package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocklens/internal/analytics"
	"stocklens/internal/infrastructure"
	"stocklens/pkg/contracts/domain"
)

func f(v float64) *float64 { return &v }

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteStatement(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir, infrastructure.GetLogger())

	stmt := &domain.Statement{
		Symbol: "AAPL",
		Type:   domain.StatementIncome,
		AnnualReports: []domain.StatementReport{
			{FiscalDateEnding: "2024-12-31", TotalRevenue: "120.5", NetIncome: "None"},
			{FiscalDateEnding: "2023-12-31", TotalRevenue: "110"},
		},
	}

	require.NoError(t, writer.WriteStatement(stmt, domain.PeriodAnnual, "aapl_income.csv"))

	records := readCSV(t, filepath.Join(dir, "aapl_income.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, "fiscalDateEnding", records[0][0])
	assert.Equal(t, domain.FieldTotalRevenue, records[0][1])

	// Oldest first.
	assert.Equal(t, "2023-12-31", records[1][0])
	assert.Equal(t, "110.00", records[1][1])
	assert.Equal(t, "2024-12-31", records[2][0])
	assert.Equal(t, "120.50", records[2][1])

	// "None" net income exports as an empty cell, not a zero.
	netIncomeCol := 0
	for i, name := range records[0] {
		if name == domain.FieldNetIncome {
			netIncomeCol = i
		}
	}
	require.NotZero(t, netIncomeCol)
	assert.Empty(t, records[2][netIncomeCol])
}

func TestWritePrices(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir, infrastructure.GetLogger())

	series := &domain.PriceSeries{
		Symbol:   "AAPL",
		Interval: "daily",
		Points: []domain.PricePoint{
			{Date: "2024-12-30", Close: f(250.1), Volume: f(1000)},
			{Date: "2024-12-27", Close: f(248), Volume: nil},
		},
	}

	require.NoError(t, writer.WritePrices(series, "aapl_prices.csv"))

	records := readCSV(t, filepath.Join(dir, "aapl_prices.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, "2024-12-27", records[1][0])
	assert.Equal(t, "248.00", records[1][4])
	assert.Empty(t, records[1][6])
	assert.Equal(t, "2024-12-30", records[2][0])
	assert.Equal(t, "1000.00", records[2][6])
}

func TestWriteSeries(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir, infrastructure.GetLogger())

	source := &SeriesSource{
		Field: "freeCashFlow",
		Points: []analytics.Point{
			{Date: "2023-12-31", Value: f(50)},
			{Date: "2024-12-31", Value: nil},
		},
	}

	require.NoError(t, writer.WriteSeries(source, "aapl_fcf.csv"))

	records := readCSV(t, filepath.Join(dir, "aapl_fcf.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"date", "freeCashFlow"}, records[0])
	assert.Equal(t, []string{"2023-12-31", "50.00"}, records[1])
	assert.Equal(t, []string{"2024-12-31", ""}, records[2])
}
