package domain

import "sort"

// PricePoint is one trading session (or intraday bar) for a symbol.
// Dates keep the provider's string form ("2006-01-02", or a timestamp for
// intraday bars); ISO ordering makes lexical sort chronological. Numeric
// fields are nullable for the same reason statement line items are.
type PricePoint struct {
	Date          string   `json:"date"`
	Open          *float64 `json:"open"`
	High          *float64 `json:"high"`
	Low           *float64 `json:"low"`
	Close         *float64 `json:"close"`
	AdjustedClose *float64 `json:"adjusted_close"`
	Volume        *float64 `json:"volume"`
}

// PriceSeries is an ordered (ascending by date) run of price points for one
// symbol. Interval is empty for daily series, or the bar size for intraday
// series (e.g. "5min").
type PriceSeries struct {
	Symbol   string       `json:"symbol"`
	Interval string       `json:"interval,omitempty"`
	Points   []PricePoint `json:"points"`
}

// SortPointsAscending orders points oldest first, in place.
func SortPointsAscending(points []PricePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
}

// LatestClose returns the adjusted close of the newest point, falling back
// to the raw close; nil when the series is empty or the newest point has
// no close at all.
func (s *PriceSeries) LatestClose() *float64 {
	if s == nil || len(s.Points) == 0 {
		return nil
	}
	last := s.Points[len(s.Points)-1]
	if last.AdjustedClose != nil {
		return last.AdjustedClose
	}
	return last.Close
}
