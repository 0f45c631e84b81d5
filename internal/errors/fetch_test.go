package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      *FetchError
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "invalid symbol",
			err:      NewInvalidSymbol("brk.b"),
			wantKind: KindInvalidSymbol,
			wantMsg:  "invalid_symbol: brk.b: symbol must be 1-5 uppercase letters",
		},
		{
			name:     "configuration",
			err:      NewConfiguration("no API credentials configured"),
			wantKind: KindConfiguration,
			wantMsg:  "configuration: no API credentials configured",
		},
		{
			name:     "all keys rate limited",
			err:      NewAllKeysRateLimited("AAPL", 3),
			wantKind: KindAllKeysRateLimited,
			wantMsg:  "all_keys_rate_limited: AAPL: all 3 credentials are rate limited",
		},
		{
			name:     "all keys skipped carries advisory",
			err:      NewAllKeysSkipped("AAPL", "premium endpoint"),
			wantKind: KindAllKeysSkipped,
			wantMsg:  "all_keys_skipped: AAPL: all credentials were skipped on provider advisories",
		},
		{
			name:     "empty result",
			err:      NewEmptyResult("ZZZZZ", "overview"),
			wantKind: KindEmptyResult,
			wantMsg:  "empty_result: ZZZZZ: no overview data available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.err.Kind)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("fetching overview: %w", NewTransport("AAPL", errors.New("status 500")))

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindTransport, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestFetchErrorIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NewAllKeysRateLimited("IBM", 2))
	assert.True(t, errors.Is(err, &FetchError{Kind: KindAllKeysRateLimited}))
	assert.False(t, errors.Is(err, &FetchError{Kind: KindAllKeysSkipped}))
}

func TestTransportUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransport("MSFT", cause)
	assert.ErrorIs(t, err, cause)
}
