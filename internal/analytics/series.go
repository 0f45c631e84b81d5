package analytics

import "stocklens/pkg/contracts/domain"

// Point is one dated observation in a derived time series. Value is nil
// when the underlying report carried no parseable figure for that date.
type Point struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// BuildSeries extracts one line item across all reports of the selected
// period type, oldest first. Rows whose raw value is missing or
// unparseable still appear, with a nil value, so the series keeps one
// point per report date.
func BuildSeries(stmt *domain.Statement, field string, period domain.PeriodType) []Point {
	if stmt == nil {
		return []Point{}
	}
	reports := domain.SortReportsAscending(stmt.Reports(period))
	series := make([]Point, 0, len(reports))
	for _, report := range reports {
		series = append(series, Point{Date: report.FiscalDateEnding, Value: report.Value(field)})
	}
	return series
}

// FreeCashFlow derives FCF per report from a cash-flow statement, oldest
// first. Per report: unknown operating cash flow means unknown FCF, while
// unknown capital expenditure leaves operating cash flow unreduced rather
// than discarding the row.
func FreeCashFlow(cashFlow *domain.Statement, period domain.PeriodType) []Point {
	if cashFlow == nil {
		return []Point{}
	}
	reports := domain.SortReportsAscending(cashFlow.Reports(period))
	series := make([]Point, 0, len(reports))
	for _, report := range reports {
		point := Point{Date: report.FiscalDateEnding}
		if ocf := report.Value(domain.FieldOperatingCashflow); ocf != nil {
			fcf := *ocf
			if capex := report.Value(domain.FieldCapitalExpenditures); capex != nil {
				fcf -= *capex
			}
			point.Value = &fcf
		}
		series = append(series, point)
	}
	return series
}
