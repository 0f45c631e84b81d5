package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementReportRaw(t *testing.T) {
	report := StatementReport{
		FiscalDateEnding: "2024-12-31",
		TotalRevenue:     "1000000",
		NetIncome:        "None",
		Extra: map[string]string{
			"researchAndDevelopment": "250000",
		},
	}

	tests := []struct {
		name  string
		field string
		want  string
	}{
		{name: "known field", field: FieldTotalRevenue, want: "1000000"},
		{name: "known field with None", field: FieldNetIncome, want: "None"},
		{name: "known field absent", field: FieldGrossProfit, want: ""},
		{name: "extra field", field: "researchAndDevelopment", want: "250000"},
		{name: "unknown field", field: "noSuchLineItem", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, report.Raw(tt.field))
		})
	}
}

func TestStatementReportValue(t *testing.T) {
	report := StatementReport{
		TotalRevenue: "5000",
		NetIncome:    "None",
	}

	rev := report.Value(FieldTotalRevenue)
	require.NotNil(t, rev)
	assert.Equal(t, 5000.0, *rev)

	assert.Nil(t, report.Value(FieldNetIncome))
	assert.Nil(t, report.Value(FieldEBITDA))
}

func TestSortReports(t *testing.T) {
	reports := []StatementReport{
		{FiscalDateEnding: "2022-12-31"},
		{FiscalDateEnding: "2024-12-31"},
		{FiscalDateEnding: "2023-12-31"},
	}

	desc := SortReportsDescending(reports)
	require.Len(t, desc, 3)
	assert.Equal(t, "2024-12-31", desc[0].FiscalDateEnding)
	assert.Equal(t, "2022-12-31", desc[2].FiscalDateEnding)

	asc := SortReportsAscending(reports)
	assert.Equal(t, "2022-12-31", asc[0].FiscalDateEnding)
	assert.Equal(t, "2024-12-31", asc[2].FiscalDateEnding)

	// Input order is untouched.
	assert.Equal(t, "2022-12-31", reports[0].FiscalDateEnding)
}

func TestStatementReportsSelection(t *testing.T) {
	stmt := Statement{
		Symbol:           "AAPL",
		Type:             StatementIncome,
		AnnualReports:    []StatementReport{{FiscalDateEnding: "2024-09-30"}},
		QuarterlyReports: []StatementReport{{FiscalDateEnding: "2024-12-31"}, {FiscalDateEnding: "2024-09-30"}},
	}

	assert.Len(t, stmt.Reports(PeriodAnnual), 1)
	assert.Len(t, stmt.Reports(PeriodQuarterly), 2)
}

func TestPriceSeriesLatestClose(t *testing.T) {
	tests := []struct {
		name   string
		series *PriceSeries
		want   *float64
	}{
		{
			name:   "nil series",
			series: nil,
			want:   nil,
		},
		{
			name:   "empty series",
			series: &PriceSeries{Symbol: "AAPL"},
			want:   nil,
		},
		{
			name: "adjusted close preferred",
			series: &PriceSeries{Points: []PricePoint{
				{Date: "2024-01-02", Close: Float(100), AdjustedClose: Float(99.5)},
			}},
			want: Float(99.5),
		},
		{
			name: "falls back to raw close",
			series: &PriceSeries{Points: []PricePoint{
				{Date: "2024-01-02", Close: Float(100)},
			}},
			want: Float(100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.series.LatestClose()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
