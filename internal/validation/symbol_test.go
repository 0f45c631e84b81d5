package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSymbol(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   bool
	}{
		{name: "single letter", symbol: "F", want: true},
		{name: "five letters", symbol: "GOOGL", want: true},
		{name: "lowercase normalized", symbol: "aapl", want: true},
		{name: "surrounding whitespace", symbol: " MSFT ", want: true},
		{name: "empty", symbol: "", want: false},
		{name: "too long", symbol: "ABCDEF", want: false},
		{name: "digits", symbol: "BRK2", want: false},
		{name: "punctuation", symbol: "BRK.B", want: false},
		{name: "embedded space", symbol: "A B", want: false},
		{name: "non-latin letters", symbol: "ÄBC", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSymbol(tt.symbol))
		})
	}
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeSymbol(" aapl "))
	assert.Equal(t, "IBM", NormalizeSymbol("IBM"))
}
