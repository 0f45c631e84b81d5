package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"stocklens/internal/config"
	apperrors "stocklens/internal/errors"
	"stocklens/internal/infrastructure"
	"stocklens/internal/validation"
	"stocklens/pkg/contracts/domain"
)

// Provider function names, passed as the "function" query parameter.
const (
	fnOverview      = "OVERVIEW"
	fnIncome        = "INCOME_STATEMENT"
	fnBalance       = "BALANCE_SHEET"
	fnCashFlow      = "CASH_FLOW"
	fnDailyPrices   = "TIME_SERIES_DAILY_ADJUSTED"
	fnIntraday      = "TIME_SERIES_INTRADAY"
	fnEarnings      = "EARNINGS"
)

// intradayIntervals is the set of bar sizes the provider accepts.
var intradayIntervals = map[string]struct{}{
	"1min": {}, "5min": {}, "15min": {}, "30min": {}, "60min": {},
}

// Client executes logical requests against the provider using an ordered,
// immutable pool of API credentials. A single logical request walks the
// pool sequentially (never in parallel, to avoid amplifying quota
// pressure), rotating on per-credential quota advisories and aborting on
// anything unambiguous. Client is safe for concurrent use; the pool is the
// only shared state and is read-only after construction.
type Client struct {
	http       *resty.Client
	keys       []string
	outputSize string
	logger     *slog.Logger
	metrics    *infrastructure.FetchMetrics
}

// NewClient constructs a provider client. An empty credential pool is a
// hard configuration error: it is surfaced here, on first use, and never
// treated as a retry condition.
func NewClient(cfg config.ProviderConfig, logger *slog.Logger, metrics *infrastructure.FetchMetrics) (*Client, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, apperrors.NewConfiguration(
			"provider credential pool is empty; set STOCKLENS_PROVIDER_API_KEYS")
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	keys := make([]string, len(cfg.APIKeys))
	copy(keys, cfg.APIKeys)

	return &Client{
		http:       httpClient,
		keys:       keys,
		outputSize: cfg.OutputSize,
		logger:     logger.With(slog.String("component", "provider_client")),
		metrics:    metrics,
	}, nil
}

// rotationState drives the credential-rotation loop. Transitions are a
// function of the classifier's output alone.
type rotationState int

const (
	stateTrying rotationState = iota
	stateSucceeded
	stateHardFailed
	stateExhausted
)

// fetch executes one logical request, rotating through the credential
// pool in fixed order until a payload classifies as Success or the pool
// is exhausted. Transport failures (non-200 status, unreadable body,
// malformed JSON) abort immediately and are never retried across
// credentials; so do explicit provider rejections.
func (c *Client) fetch(ctx context.Context, symbol string, params map[string]string) ([]byte, error) {
	var (
		state        = stateTrying
		body         []byte
		hardErr      error
		rateLimited  int
		skipped      int
		lastAdvisory string
	)

	for i := 0; i < len(c.keys) && state == stateTrying; i++ {
		if i > 0 {
			c.metrics.RecordRotation(ctx)
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("apikey", c.keys[i]).
			Get("")
		if err != nil {
			return nil, apperrors.NewTransport(symbol, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, apperrors.NewTransport(symbol,
				fmt.Errorf("unexpected status %d from provider", resp.StatusCode()))
		}

		result, err := Classify(resp.Body())
		if err != nil {
			// Undecodable body; the provider sometimes falls back to
			// text/CSV output unannounced.
			return nil, apperrors.NewTransport(symbol, fmt.Errorf("undecodable response body: %w", err))
		}
		c.metrics.RecordAttempt(ctx, result.Class.String())

		switch result.Class {
		case ClassSuccess:
			state = stateSucceeded
			body = resp.Body()

		case ClassHardError:
			state = stateHardFailed
			hardErr = apperrors.NewProviderRejected(symbol, result.Message)

		case ClassRateLimited:
			rateLimited++
			c.logger.WarnContext(ctx, "credential rate limited, rotating",
				slog.String("symbol", symbol),
				slog.Int("key_index", i),
				slog.Int("pool_size", len(c.keys)))

		case ClassAmbiguousAdvisory:
			skipped++
			lastAdvisory = result.Advisory
			c.logger.WarnContext(ctx, "credential skipped on provider advisory",
				slog.String("symbol", symbol),
				slog.Int("key_index", i),
				slog.String("advisory", result.Advisory))
		}
	}

	switch state {
	case stateSucceeded:
		return body, nil
	case stateHardFailed:
		return nil, hardErr
	}

	// stateExhausted: the pool ran out without a success. Collapse the
	// attempt history into a single classified error.
	if rateLimited > 0 {
		return nil, apperrors.NewAllKeysRateLimited(symbol, len(c.keys))
	}
	if skipped == len(c.keys) {
		return nil, apperrors.NewAllKeysSkipped(symbol, lastAdvisory)
	}
	return nil, apperrors.NewTransport(symbol, fmt.Errorf("acquisition failed after %d attempts", len(c.keys)))
}

// execute validates the symbol, runs the rotation, parses the Success
// payload, and records fetch metrics. Parse/normalization failures
// propagate immediately without further retries.
func execute[T any](ctx context.Context, c *Client, resource domain.Resource, symbol string,
	params map[string]string, parse func([]byte) (T, error)) (T, error) {

	var zero T

	normalized := validation.NormalizeSymbol(symbol)
	if !validation.IsValidSymbol(normalized) {
		return zero, apperrors.NewInvalidSymbol(symbol)
	}
	params["symbol"] = normalized

	start := time.Now()
	body, err := c.fetch(ctx, normalized, params)
	if err != nil {
		c.metrics.RecordFetch(ctx, string(resource), outcome(err), time.Since(start))
		return zero, err
	}

	value, err := parse(body)
	c.metrics.RecordFetch(ctx, string(resource), outcome(err), time.Since(start))
	if err != nil {
		return zero, err
	}

	c.logger.DebugContext(ctx, "fetched provider resource",
		slog.String("symbol", normalized),
		slog.String("resource", string(resource)),
		slog.Duration("elapsed", time.Since(start)))
	return value, nil
}

// outcome renders an error as a metrics label value.
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if kind, ok := apperrors.KindOf(err); ok {
		return string(kind)
	}
	return "error"
}

// GetOverview fetches and normalizes the company overview for a symbol.
func (c *Client) GetOverview(ctx context.Context, symbol string) (*domain.CompanyOverview, error) {
	return execute(ctx, c, domain.ResourceOverview, symbol,
		map[string]string{"function": fnOverview},
		func(body []byte) (*domain.CompanyOverview, error) {
			return normalizeOverview(validation.NormalizeSymbol(symbol), body)
		})
}

// GetIncomeStatement fetches the income statement document.
func (c *Client) GetIncomeStatement(ctx context.Context, symbol string) (*domain.Statement, error) {
	return c.getStatement(ctx, symbol, fnIncome, domain.StatementIncome, domain.ResourceIncome)
}

// GetBalanceSheet fetches the balance sheet document.
func (c *Client) GetBalanceSheet(ctx context.Context, symbol string) (*domain.Statement, error) {
	return c.getStatement(ctx, symbol, fnBalance, domain.StatementBalance, domain.ResourceBalance)
}

// GetCashFlow fetches the cash flow document.
func (c *Client) GetCashFlow(ctx context.Context, symbol string) (*domain.Statement, error) {
	return c.getStatement(ctx, symbol, fnCashFlow, domain.StatementCashFlow, domain.ResourceCashFlow)
}

func (c *Client) getStatement(ctx context.Context, symbol, fn string, stype domain.StatementType, resource domain.Resource) (*domain.Statement, error) {
	return execute(ctx, c, resource, symbol,
		map[string]string{"function": fn},
		func(body []byte) (*domain.Statement, error) {
			return normalizeStatement(validation.NormalizeSymbol(symbol), stype, resource, body)
		})
}

// GetDailyPrices fetches the daily adjusted price series, sorted ascending
// by date.
func (c *Client) GetDailyPrices(ctx context.Context, symbol string) (*domain.PriceSeries, error) {
	return execute(ctx, c, domain.ResourceDailyPrices, symbol,
		map[string]string{
			"function":   fnDailyPrices,
			"outputsize": c.outputSize,
			"datatype":   "json",
		},
		func(body []byte) (*domain.PriceSeries, error) {
			return normalizePrices(validation.NormalizeSymbol(symbol), "", domain.ResourceDailyPrices, body)
		})
}

// GetIntradayPrices fetches an intraday price series at the given bar
// interval (1min, 5min, 15min, 30min, or 60min).
func (c *Client) GetIntradayPrices(ctx context.Context, symbol, interval string) (*domain.PriceSeries, error) {
	if _, ok := intradayIntervals[interval]; !ok {
		return nil, apperrors.NewInvalidArgument(fmt.Sprintf("unsupported intraday interval %q", interval))
	}
	return execute(ctx, c, domain.ResourceIntradayPrices, symbol,
		map[string]string{
			"function":   fnIntraday,
			"interval":   interval,
			"outputsize": c.outputSize,
			"datatype":   "json",
		},
		func(body []byte) (*domain.PriceSeries, error) {
			return normalizePrices(validation.NormalizeSymbol(symbol), interval, domain.ResourceIntradayPrices, body)
		})
}

// GetEarnings fetches the earnings history for a symbol.
func (c *Client) GetEarnings(ctx context.Context, symbol string) (*domain.Earnings, error) {
	return execute(ctx, c, domain.ResourceEarnings, symbol,
		map[string]string{"function": fnEarnings},
		func(body []byte) (*domain.Earnings, error) {
			return normalizeEarnings(validation.NormalizeSymbol(symbol), body)
		})
}

// PoolSize reports the number of credentials in the rotation pool.
func (c *Client) PoolSize() int {
	return len(c.keys)
}
