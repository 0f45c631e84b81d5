// Package validation provides input validation shared by every entry point
// (HTTP handlers, CLI, services). Validation is the first gate on any
// request: an invalid symbol fails fast before a single network call.
package validation

import (
	"regexp"
	"strings"
)

// symbolPattern matches a US-style ticker: 1-5 uppercase Latin letters.
// Digits, punctuation, and anything longer are rejected outright.
var symbolPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// NormalizeSymbol trims whitespace and uppercases a raw symbol input.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// IsValidSymbol reports whether the input, after case normalization, is a
// well-formed ticker symbol. Side-effect-free.
func IsValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(NormalizeSymbol(symbol))
}
