package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferredPE(t *testing.T) {
	pe := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		overview *CompanyOverview
		want     *float64
	}{
		{
			name:     "trailing wins over all",
			overview: &CompanyOverview{TrailingPE: pe(32), PERatio: pe(30), ForwardPE: pe(28)},
			want:     pe(32),
		},
		{
			name:     "pe ratio wins over forward",
			overview: &CompanyOverview{PERatio: pe(30), ForwardPE: pe(28)},
			want:     pe(30),
		},
		{
			name:     "forward as last resort",
			overview: &CompanyOverview{ForwardPE: pe(28)},
			want:     pe(28),
		},
		{
			name:     "all absent",
			overview: &CompanyOverview{},
			want:     nil,
		},
		{
			name:     "nil receiver",
			overview: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.overview.PreferredPE()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}
