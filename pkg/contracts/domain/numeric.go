package domain

import (
	"math"
	"strconv"
	"strings"
)

// noneSentinel is the literal the provider uses for missing numeric values.
const noneSentinel = "None"

// ParseNumeric coerces a raw provider string into a nullable float.
// Every provider-supplied numeric string passes through here.
//
// Rules, in order: empty string -> nil; the "None" sentinel -> nil;
// otherwise a float parse, with any parse failure degrading to nil.
// It never panics and never returns NaN or Inf: "unknown" stays distinct
// from zero all the way through the calculation layer.
func ParseNumeric(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == noneSentinel {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Float returns a pointer to v. Convenience for building test fixtures and
// literal records.
func Float(v float64) *float64 {
	return &v
}

// FloatValue dereferences p, returning fallback when p is nil.
func FloatValue(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
