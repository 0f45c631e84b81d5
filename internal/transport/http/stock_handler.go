package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apperrors "stocklens/internal/errors"
	"stocklens/internal/validation"
	"stocklens/pkg/contracts/domain"
)

type contextKey string

const symbolKey contextKey = "symbol"

var validate = validator.New()

// StockHandler serves per-symbol data and analytics routes.
type StockHandler struct {
	stocks       StockDataService
	analysis     AnalyticsService
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewStockHandler creates a StockHandler.
func NewStockHandler(stocks StockDataService, analysis AnalyticsService, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *StockHandler {
	return &StockHandler{
		stocks:       stocks,
		analysis:     analysis,
		logger:       logger.With(slog.String("component", "stock_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the per-symbol routes, mounted under /api/stocks.
func (h *StockHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Route("/{symbol}", func(r chi.Router) {
		r.Use(h.SymbolCtx)
		r.Get("/overview", h.GetOverview)
		r.Get("/income-statement", h.GetIncomeStatement)
		r.Get("/balance-sheet", h.GetBalanceSheet)
		r.Get("/cash-flow", h.GetCashFlow)
		r.Get("/prices", h.GetDailyPrices)
		r.Get("/intraday", h.GetIntradayPrices)
		r.Get("/earnings", h.GetEarnings)
		r.Get("/metrics", h.GetMetrics)
		r.Get("/series/{field}", h.GetSeries)
		r.Get("/free-cash-flow", h.GetFreeCashFlow)
		r.Get("/forecast", h.GetForecast)
		r.Post("/forecast", h.PostForecast)
	})

	return r
}

// SymbolCtx validates and normalizes the symbol path parameter.
func (h *StockHandler) SymbolCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := validation.NormalizeSymbol(chi.URLParam(r, "symbol"))
		if !validation.IsValidSymbol(symbol) {
			h.errorHandler.HandleError(w, r, apperrors.NewInvalidSymbol(symbol))
			return
		}
		ctx := context.WithValue(r.Context(), symbolKey, symbol)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func symbolFrom(r *http.Request) string {
	symbol, _ := r.Context().Value(symbolKey).(string)
	return symbol
}

// periodFrom parses the optional ?period= query parameter, defaulting to
// annual.
func periodFrom(r *http.Request) (domain.PeriodType, error) {
	switch raw := r.URL.Query().Get("period"); raw {
	case "", string(domain.PeriodAnnual):
		return domain.PeriodAnnual, nil
	case string(domain.PeriodQuarterly):
		return domain.PeriodQuarterly, nil
	default:
		return "", apperrors.NewInvalidArgument("period must be annual or quarterly")
	}
}

// setCacheControl advertises the per-resource TTL hint to HTTP caches.
func setCacheControl(w http.ResponseWriter, resource domain.Resource) {
	maxAge := int(domain.CacheTTL(resource).Seconds())
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
}

// respond renders value, routing err through the problem-details handler.
func (h *StockHandler) respond(w http.ResponseWriter, r *http.Request, value any, err error) {
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, value)
}

// GetOverview handles GET /api/stocks/{symbol}/overview.
func (h *StockHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.stocks.Overview(r.Context(), symbolFrom(r))
	if err == nil {
		setCacheControl(w, domain.ResourceOverview)
	}
	h.respond(w, r, overview, err)
}

// GetIncomeStatement handles GET /api/stocks/{symbol}/income-statement.
func (h *StockHandler) GetIncomeStatement(w http.ResponseWriter, r *http.Request) {
	stmt, err := h.stocks.IncomeStatement(r.Context(), symbolFrom(r))
	if err == nil {
		setCacheControl(w, domain.ResourceIncome)
	}
	h.respond(w, r, stmt, err)
}

// GetBalanceSheet handles GET /api/stocks/{symbol}/balance-sheet.
func (h *StockHandler) GetBalanceSheet(w http.ResponseWriter, r *http.Request) {
	stmt, err := h.stocks.BalanceSheet(r.Context(), symbolFrom(r))
	if err == nil {
		setCacheControl(w, domain.ResourceBalance)
	}
	h.respond(w, r, stmt, err)
}

// GetCashFlow handles GET /api/stocks/{symbol}/cash-flow.
func (h *StockHandler) GetCashFlow(w http.ResponseWriter, r *http.Request) {
	stmt, err := h.stocks.CashFlow(r.Context(), symbolFrom(r))
	if err == nil {
		setCacheControl(w, domain.ResourceCashFlow)
	}
	h.respond(w, r, stmt, err)
}

// GetDailyPrices handles GET /api/stocks/{symbol}/prices.
func (h *StockHandler) GetDailyPrices(w http.ResponseWriter, r *http.Request) {
	series, err := h.stocks.DailyPrices(r.Context(), symbolFrom(r))
	if err == nil {
		setCacheControl(w, domain.ResourceDailyPrices)
	}
	h.respond(w, r, series, err)
}

// GetIntradayPrices handles GET /api/stocks/{symbol}/intraday. The
// interval query parameter defaults to 5min; the provider client rejects
// unsupported intervals.
func (h *StockHandler) GetIntradayPrices(w http.ResponseWriter, r *http.Request) {
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = "5min"
	}
	series, err := h.stocks.IntradayPrices(r.Context(), symbolFrom(r), interval)
	if err == nil {
		setCacheControl(w, domain.ResourceIntradayPrices)
	}
	h.respond(w, r, series, err)
}

// GetEarnings handles GET /api/stocks/{symbol}/earnings.
func (h *StockHandler) GetEarnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := h.stocks.Earnings(r.Context(), symbolFrom(r))
	if err == nil {
		setCacheControl(w, domain.ResourceEarnings)
	}
	h.respond(w, r, earnings, err)
}

// GetMetrics handles GET /api/stocks/{symbol}/metrics.
func (h *StockHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	period, err := periodFrom(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	report, err := h.analysis.Metrics(r.Context(), symbolFrom(r), period)
	h.respond(w, r, report, err)
}

// GetSeries handles GET /api/stocks/{symbol}/series/{field}.
func (h *StockHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	period, err := periodFrom(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	report, err := h.analysis.Series(r.Context(), symbolFrom(r), chi.URLParam(r, "field"), period)
	h.respond(w, r, report, err)
}

// GetFreeCashFlow handles GET /api/stocks/{symbol}/free-cash-flow.
func (h *StockHandler) GetFreeCashFlow(w http.ResponseWriter, r *http.Request) {
	period, err := periodFrom(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	report, err := h.analysis.FreeCashFlow(r.Context(), symbolFrom(r), period)
	h.respond(w, r, report, err)
}

// GetForecast handles GET /api/stocks/{symbol}/forecast, projecting from
// assumptions seeded out of the fundamentals.
func (h *StockHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	report, err := h.analysis.Forecast(r.Context(), symbolFrom(r))
	h.respond(w, r, report, err)
}

// PostForecast handles POST /api/stocks/{symbol}/forecast, projecting
// from caller-supplied assumptions.
func (h *StockHandler) PostForecast(w http.ResponseWriter, r *http.Request) {
	var inputs domain.ForecastInputs
	if err := render.DecodeJSON(r.Body, &inputs); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.NewInvalidArgument("invalid forecast body: "+err.Error()))
		return
	}
	if err := validate.Struct(inputs); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.NewInvalidArgument("invalid forecast assumptions: "+err.Error()))
		return
	}

	report, err := h.analysis.ForecastWith(r.Context(), symbolFrom(r), inputs)
	h.respond(w, r, report, err)
}
