// Package domain defines the Single Source of Truth (SSOT) data structures
// for the StockLens system: normalized provider records (company overview,
// financial statements, price series, earnings) and the derived analytics
// types computed from them.
//
// All numeric values that originate from the provider are nullable. The
// provider delivers every figure as a string and routinely substitutes
// "None", empty strings, or omits fields entirely; ParseNumeric is the
// single coercion point that turns those into *float64, where nil means
// "unknown" as opposed to zero. Records are immutable snapshots: they are
// recreated on each fetch and never mutated in place.
package domain
