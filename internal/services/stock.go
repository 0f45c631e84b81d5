// Package services composes the provider client, cache, and analytics
// into the operations the transport layer exposes.
package services

import (
	"context"
	"log/slog"

	"stocklens/internal/config"
	"stocklens/pkg/contracts/domain"
)

// Fetcher is the provider surface the services depend on. The concrete
// implementation is provider.Client; tests substitute fakes.
type Fetcher interface {
	GetOverview(ctx context.Context, symbol string) (*domain.CompanyOverview, error)
	GetIncomeStatement(ctx context.Context, symbol string) (*domain.Statement, error)
	GetBalanceSheet(ctx context.Context, symbol string) (*domain.Statement, error)
	GetCashFlow(ctx context.Context, symbol string) (*domain.Statement, error)
	GetDailyPrices(ctx context.Context, symbol string) (*domain.PriceSeries, error)
	GetIntradayPrices(ctx context.Context, symbol, interval string) (*domain.PriceSeries, error)
	GetEarnings(ctx context.Context, symbol string) (*domain.Earnings, error)
}

// StockService serves raw provider data sets, memoizing each for the
// per-resource TTL hint. Errors are never cached; a failed fetch is
// retried on the next request.
type StockService struct {
	fetcher Fetcher
	cache   *memoCache
	enabled bool
	logger  *slog.Logger
}

// NewStockService creates a StockService backed by the given fetcher.
func NewStockService(fetcher Fetcher, cfg config.CacheConfig, logger *slog.Logger) *StockService {
	return &StockService{
		fetcher: fetcher,
		cache:   newMemoCache(),
		enabled: cfg.Enabled,
		logger:  logger,
	}
}

// cached memoizes fn's successful result under the resource's TTL hint.
func cached[T any](ctx context.Context, s *StockService, resource domain.Resource, key string, fn func(context.Context) (T, error)) (T, error) {
	cacheKey := string(resource) + ":" + key
	if s.enabled {
		if v, ok := s.cache.get(cacheKey); ok {
			if typed, ok := v.(T); ok {
				s.logger.DebugContext(ctx, "cache hit",
					slog.String("resource", string(resource)),
					slog.String("key", key))
				return typed, nil
			}
		}
	}

	value, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if s.enabled {
		s.cache.put(cacheKey, value, domain.CacheTTL(resource))
	}
	return value, nil
}

func (s *StockService) Overview(ctx context.Context, symbol string) (*domain.CompanyOverview, error) {
	return cached(ctx, s, domain.ResourceOverview, symbol, func(ctx context.Context) (*domain.CompanyOverview, error) {
		return s.fetcher.GetOverview(ctx, symbol)
	})
}

func (s *StockService) IncomeStatement(ctx context.Context, symbol string) (*domain.Statement, error) {
	return cached(ctx, s, domain.ResourceIncome, symbol, func(ctx context.Context) (*domain.Statement, error) {
		return s.fetcher.GetIncomeStatement(ctx, symbol)
	})
}

func (s *StockService) BalanceSheet(ctx context.Context, symbol string) (*domain.Statement, error) {
	return cached(ctx, s, domain.ResourceBalance, symbol, func(ctx context.Context) (*domain.Statement, error) {
		return s.fetcher.GetBalanceSheet(ctx, symbol)
	})
}

func (s *StockService) CashFlow(ctx context.Context, symbol string) (*domain.Statement, error) {
	return cached(ctx, s, domain.ResourceCashFlow, symbol, func(ctx context.Context) (*domain.Statement, error) {
		return s.fetcher.GetCashFlow(ctx, symbol)
	})
}

func (s *StockService) DailyPrices(ctx context.Context, symbol string) (*domain.PriceSeries, error) {
	return cached(ctx, s, domain.ResourceDailyPrices, symbol, func(ctx context.Context) (*domain.PriceSeries, error) {
		return s.fetcher.GetDailyPrices(ctx, symbol)
	})
}

func (s *StockService) IntradayPrices(ctx context.Context, symbol, interval string) (*domain.PriceSeries, error) {
	return cached(ctx, s, domain.ResourceIntradayPrices, symbol+":"+interval, func(ctx context.Context) (*domain.PriceSeries, error) {
		return s.fetcher.GetIntradayPrices(ctx, symbol, interval)
	})
}

func (s *StockService) Earnings(ctx context.Context, symbol string) (*domain.Earnings, error) {
	return cached(ctx, s, domain.ResourceEarnings, symbol, func(ctx context.Context) (*domain.Earnings, error) {
		return s.fetcher.GetEarnings(ctx, symbol)
	})
}
