// Command analyze fetches fundamentals for one symbol, derives metrics
// and a forecast, and writes the results as CSV files and an Excel
// workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"stocklens/internal/config"
	"stocklens/internal/exporter"
	"stocklens/internal/infrastructure"
	"stocklens/internal/provider"
	"stocklens/internal/services"
	"stocklens/pkg/contracts/domain"
)

func main() {
	symbol := flag.String("symbol", "", "ticker symbol to analyze (required)")
	period := flag.String("period", "annual", "report period: annual | quarterly")
	outDir := flag.String("out", "exports", "output directory")
	format := flag.String("format", "both", "output format: csv | xlsx | both")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -symbol is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, cfg, logger, *symbol, *period, *outDir, *format); err != nil {
		logger.Error("analysis failed", slog.String("symbol", *symbol), slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, rawSymbol, rawPeriod, outDir, format string) error {
	var reportPeriod domain.PeriodType
	switch rawPeriod {
	case "annual":
		reportPeriod = domain.PeriodAnnual
	case "quarterly":
		reportPeriod = domain.PeriodQuarterly
	default:
		return fmt.Errorf("invalid period %q: must be annual or quarterly", rawPeriod)
	}
	if format != "csv" && format != "xlsx" && format != "both" {
		return fmt.Errorf("invalid format %q: must be csv, xlsx, or both", format)
	}

	client, err := provider.NewClient(cfg.Provider, logger, nil)
	if err != nil {
		return err
	}
	stocks := services.NewStockService(client, cfg.Cache, logger)
	analysis := services.NewAnalysisService(stocks, logger)

	var (
		income   *domain.Statement
		balance  *domain.Statement
		cashFlow *domain.Statement
		prices   *domain.PriceSeries
		metrics  *services.MetricsReport
		fcf      *services.SeriesReport
		forecast *services.ForecastReport
	)

	// The statements and prices feed the CSV exports; the derived
	// reports below reuse these memoized fetches.
	if income, err = stocks.IncomeStatement(ctx, rawSymbol); err != nil {
		return err
	}
	if balance, err = stocks.BalanceSheet(ctx, rawSymbol); err != nil {
		return err
	}
	if cashFlow, err = stocks.CashFlow(ctx, rawSymbol); err != nil {
		return err
	}
	if prices, err = stocks.DailyPrices(ctx, rawSymbol); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		metrics, err = analysis.Metrics(gctx, rawSymbol, reportPeriod)
		return err
	})
	g.Go(func() (err error) {
		fcf, err = analysis.FreeCashFlow(gctx, rawSymbol, reportPeriod)
		return err
	})
	g.Go(func() (err error) {
		forecast, err = analysis.Forecast(gctx, rawSymbol)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	overview, err := stocks.Overview(ctx, rawSymbol)
	if err != nil {
		return err
	}

	prefix := strings.ToLower(metrics.Symbol)

	if format == "csv" || format == "both" {
		csvWriter := exporter.NewCSVWriter(outDir, logger)
		if err := csvWriter.WriteStatement(income, reportPeriod, prefix+"_income.csv"); err != nil {
			return err
		}
		if err := csvWriter.WriteStatement(balance, reportPeriod, prefix+"_balance.csv"); err != nil {
			return err
		}
		if err := csvWriter.WriteStatement(cashFlow, reportPeriod, prefix+"_cashflow.csv"); err != nil {
			return err
		}
		if err := csvWriter.WritePrices(prices, prefix+"_prices.csv"); err != nil {
			return err
		}
		if err := csvWriter.WriteSeries(&exporter.SeriesSource{Field: "freeCashFlow", Points: fcf.Points}, prefix+"_fcf.csv"); err != nil {
			return err
		}
	}

	if format == "xlsx" || format == "both" {
		workbook := exporter.NewWorkbookWriter(outDir, logger)
		report := &exporter.AnalysisReport{
			Symbol:          metrics.Symbol,
			Overview:        overview,
			Growth:          metrics.Growth,
			Profitability:   metrics.Profitability,
			Efficiency:      metrics.Efficiency,
			Valuation:       metrics.Valuation,
			FreeCashFlow:    fcf.Points,
			ForecastInputs:  forecast.Inputs,
			ForecastOutputs: forecast.Outputs,
			Upside:          forecast.Upside,
		}
		if err := workbook.WriteAnalysis(report, prefix+"_analysis.xlsx"); err != nil {
			return err
		}
	}

	logger.Info("analysis complete",
		slog.String("symbol", metrics.Symbol),
		slog.String("period", string(reportPeriod)),
		slog.String("out", outDir))
	return nil
}
