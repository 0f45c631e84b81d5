package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"stocklens/internal/analytics"
	"stocklens/pkg/contracts/domain"
)

// AnalysisReport is everything the workbook writer lays out for one
// symbol. Any section may be nil or empty; the corresponding sheet is
// still written so the workbook shape stays stable.
type AnalysisReport struct {
	Symbol          string
	Overview        *domain.CompanyOverview
	Growth          *domain.GrowthMetrics
	Profitability   *domain.ProfitabilityMetrics
	Efficiency      *domain.EfficiencyMetrics
	Valuation       *domain.ValuationMetrics
	FreeCashFlow    []analytics.Point
	ForecastInputs  domain.ForecastInputs
	ForecastOutputs domain.ForecastOutputs
	Upside          *float64
}

// WorkbookWriter writes analysis workbooks under a base directory.
type WorkbookWriter struct {
	dir    string
	logger *slog.Logger
}

// NewWorkbookWriter creates a WorkbookWriter rooted at dir.
func NewWorkbookWriter(dir string, logger *slog.Logger) *WorkbookWriter {
	return &WorkbookWriter{dir: dir, logger: logger}
}

// WriteAnalysis writes one workbook with Overview, Metrics, Free Cash
// Flow, and Forecast sheets.
func (w *WorkbookWriter) WriteAnalysis(report *AnalysisReport, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeOverviewSheet(f, report); err != nil {
		return err
	}
	if err := writeMetricsSheet(f, report); err != nil {
		return err
	}
	if err := writeFCFSheet(f, report.FreeCashFlow); err != nil {
		return err
	}
	if err := writeForecastSheet(f, report); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	fullPath := filepath.Join(w.dir, filename)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("wrote analysis workbook",
		slog.String("path", fullPath),
		slog.String("symbol", report.Symbol))
	return nil
}

func writeOverviewSheet(f *excelize.File, report *AnalysisReport) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]any{
		{"Symbol", report.Symbol},
	}
	if o := report.Overview; o != nil {
		rows = append(rows,
			[]any{"Name", o.Name},
			[]any{"Sector", o.Sector},
			[]any{"Industry", o.Industry},
			[]any{"Currency", o.Currency},
			[]any{"Market Cap", formatPtr(o.MarketCap)},
			[]any{"P/E Ratio", formatPtr(o.PERatio)},
			[]any{"Forward P/E", formatPtr(o.ForwardPE)},
			[]any{"Dividend Yield", formatPtr(o.DividendYield)},
			[]any{"Shares Outstanding", formatPtr(o.SharesOutstanding)},
		)
	}
	return writeRows(f, sheet, rows)
}

func writeMetricsSheet(f *excelize.File, report *AnalysisReport) error {
	const sheet = "Metrics"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]any{{"Metric", "Value"}}
	if g := report.Growth; g != nil {
		rows = append(rows,
			[]any{"Revenue YoY %", formatPtr(g.RevenueYoY)},
			[]any{"Revenue CAGR 3Y %", formatPtr(g.RevenueCAGR3Y)},
			[]any{"Revenue CAGR 5Y %", formatPtr(g.RevenueCAGR5Y)},
			[]any{"Net Income YoY %", formatPtr(g.NetIncomeYoY)},
			[]any{"Net Income CAGR 3Y %", formatPtr(g.NetIncomeCAGR3Y)},
			[]any{"Net Income CAGR 5Y %", formatPtr(g.NetIncomeCAGR5Y)},
			[]any{"Operating Income YoY %", formatPtr(g.OperatingIncomeYoY)},
		)
	}
	if p := report.Profitability; p != nil {
		rows = append(rows,
			[]any{"Gross Margin %", formatPtr(p.GrossMargin)},
			[]any{"Operating Margin %", formatPtr(p.OperatingMargin)},
			[]any{"Net Margin %", formatPtr(p.NetMargin)},
			[]any{"EBITDA Margin %", formatPtr(p.EBITDAMargin)},
			[]any{"Return on Equity %", formatPtr(p.ReturnOnEquity)},
			[]any{"Return on Assets %", formatPtr(p.ReturnOnAssets)},
		)
	}
	if e := report.Efficiency; e != nil {
		rows = append(rows,
			[]any{"Asset Turnover", formatPtr(e.AssetTurnover)},
			[]any{"Working Capital Efficiency", formatPtr(e.WorkingCapitalEfficiency)},
		)
	}
	if v := report.Valuation; v != nil {
		rows = append(rows,
			[]any{"Market Cap", formatPtr(v.MarketCap)},
			[]any{"P/E Ratio", formatPtr(v.PERatio)},
			[]any{"Price to Book", formatPtr(v.PriceToBook)},
			[]any{"Price to Sales", formatPtr(v.PriceToSales)},
			[]any{"EV to Revenue", formatPtr(v.EVToRevenue)},
			[]any{"EV to EBITDA", formatPtr(v.EVToEBITDA)},
		)
	}
	return writeRows(f, sheet, rows)
}

func writeFCFSheet(f *excelize.File, points []analytics.Point) error {
	const sheet = "Free Cash Flow"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]any{{"Date", "Free Cash Flow"}}
	for _, p := range points {
		rows = append(rows, []any{p.Date, formatPtr(p.Value)})
	}
	return writeRows(f, sheet, rows)
}

func writeForecastSheet(f *excelize.File, report *AnalysisReport) error {
	const sheet = "Forecast"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	in, out := report.ForecastInputs, report.ForecastOutputs
	rows := [][]any{
		{"Assumption", "Value"},
		{"Revenue Growth %", in.RevenueGrowth},
		{"Gross Margin %", in.GrossMargin},
		{"Operating Margin %", in.OperatingMargin},
		{"Tax Rate %", in.TaxRate},
		{"P/E Multiple", in.PEMultiple},
		{"Base Revenue", in.BaseRevenue},
		{"Shares Outstanding", in.SharesOutstanding},
		{},
		{"Projection", "Value"},
		{"Projected Revenue", out.ProjectedRevenue},
		{"Gross Profit", out.GrossProfit},
		{"Operating Income", out.OperatingIncome},
		{"Net Income", out.NetIncome},
		{"EPS", out.EPS},
		{"Implied Price", out.ImpliedPrice},
		{"Upside %", formatPtr(report.Upside)},
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row on %s: %w", sheet, err)
		}
	}
	return nil
}
