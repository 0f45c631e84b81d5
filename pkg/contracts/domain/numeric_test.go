package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{
			name: "empty string",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			raw:  "   ",
			want: nil,
		},
		{
			name: "None sentinel",
			raw:  "None",
			want: nil,
		},
		{
			name: "non-numeric text",
			raw:  "not-a-number",
			want: nil,
		},
		{
			name: "partial numeric text",
			raw:  "12abc",
			want: nil,
		},
		{
			name: "integer",
			raw:  "42",
			want: Float(42),
		},
		{
			name: "decimal",
			raw:  "3.14159",
			want: Float(3.14159),
		},
		{
			name: "negative",
			raw:  "-1250000",
			want: Float(-1250000),
		},
		{
			name: "scientific notation",
			raw:  "1.5e9",
			want: Float(1.5e9),
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  " 7.5 ",
			want: Float(7.5),
		},
		{
			name: "NaN literal filtered",
			raw:  "NaN",
			want: nil,
		},
		{
			name: "infinity literal filtered",
			raw:  "Inf",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumeric(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestFloatValue(t *testing.T) {
	assert.Equal(t, 5.0, FloatValue(Float(5), 0))
	assert.Equal(t, 20.0, FloatValue(nil, 20))
}
