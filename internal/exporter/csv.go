package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"stocklens/internal/analytics"
	"stocklens/pkg/contracts/domain"
)

// statementColumns is the fixed export order for statement line items.
var statementColumns = []string{
	domain.FieldTotalRevenue,
	domain.FieldGrossProfit,
	domain.FieldCostOfRevenue,
	domain.FieldOperatingIncome,
	domain.FieldEBITDA,
	domain.FieldIncomeBeforeTax,
	domain.FieldIncomeTaxExpense,
	domain.FieldNetIncome,
	domain.FieldTotalAssets,
	domain.FieldTotalCurrentAssets,
	domain.FieldTotalCurrentLiabilities,
	domain.FieldTotalLiabilities,
	domain.FieldTotalShareholderEquity,
	domain.FieldLongTermDebt,
	domain.FieldCashAndEquivalents,
	domain.FieldOperatingCashflow,
	domain.FieldCapitalExpenditures,
	domain.FieldDividendPayout,
}

// CSVWriter writes data sets as CSV files under a base directory.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a CSVWriter rooted at dir.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteStatement exports one statement, oldest report first, with a
// fixed column set. Line items the provider never sent export as empty
// cells.
func (w *CSVWriter) WriteStatement(stmt *domain.Statement, period domain.PeriodType, filename string) error {
	reports := domain.SortReportsAscending(stmt.Reports(period))

	header := append([]string{"fiscalDateEnding"}, statementColumns...)
	records := make([][]string, 0, len(reports))
	for _, report := range reports {
		row := make([]string, 0, len(header))
		row = append(row, report.FiscalDateEnding)
		for _, field := range statementColumns {
			row = append(row, formatValue(report.Value(field)))
		}
		records = append(records, row)
	}

	return w.write(filename, header, records)
}

// WritePrices exports a price series, oldest point first.
func (w *CSVWriter) WritePrices(series *domain.PriceSeries, filename string) error {
	points := make([]domain.PricePoint, len(series.Points))
	copy(points, series.Points)
	domain.SortPointsAscending(points)

	header := []string{"date", "open", "high", "low", "close", "adjustedClose", "volume"}
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			p.Date,
			formatValue(p.Open),
			formatValue(p.High),
			formatValue(p.Low),
			formatValue(p.Close),
			formatValue(p.AdjustedClose),
			formatValue(p.Volume),
		})
	}

	return w.write(filename, header, records)
}

// WriteSeries exports one derived series (a statement line item or free
// cash flow).
func (w *CSVWriter) WriteSeries(report *SeriesSource, filename string) error {
	header := []string{"date", report.Field}
	records := make([][]string, 0, len(report.Points))
	for _, p := range report.Points {
		records = append(records, []string{p.Date, formatValue(p.Value)})
	}
	return w.write(filename, header, records)
}

// SeriesSource is the minimal series shape the writers need; it mirrors
// the analysis service's series report without importing it.
type SeriesSource struct {
	Field  string
	Points []analytics.Point
}

func (w *CSVWriter) write(filename string, header []string, records [][]string) error {
	fullPath := filepath.Join(w.dir, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := writeCSV(file, header, records); err != nil {
		return err
	}

	w.logger.Info("wrote csv export",
		slog.String("path", fullPath),
		slog.Int("rows", len(records)))
	return nil
}

func writeCSV(out io.Writer, header []string, records [][]string) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
