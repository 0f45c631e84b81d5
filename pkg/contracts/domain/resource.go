package domain

import "time"

// Resource identifies one kind of provider data set the system can fetch.
type Resource string

const (
	ResourceOverview       Resource = "overview"
	ResourceIncome         Resource = "income-statement"
	ResourceBalance        Resource = "balance-sheet"
	ResourceCashFlow       Resource = "cash-flow"
	ResourceDailyPrices    Resource = "daily-prices"
	ResourceIntradayPrices Resource = "intraday-prices"
	ResourceEarnings       Resource = "earnings"
)

// CacheTTL returns the suggested cache lifetime for a resource kind.
// Statements and profiles change once per fiscal period, prices churn all
// day. These are hints for the calling layer; the core holds no cache
// state of its own.
func CacheTTL(r Resource) time.Duration {
	switch r {
	case ResourceDailyPrices:
		return 15 * time.Minute
	case ResourceIntradayPrices:
		return time.Minute
	case ResourceOverview, ResourceIncome, ResourceBalance, ResourceCashFlow, ResourceEarnings:
		return 24 * time.Hour
	}
	return time.Hour
}
