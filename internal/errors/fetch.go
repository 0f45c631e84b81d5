// Package errors defines the StockLens error taxonomy and its mapping to
// RFC 7807 problem responses. Every failure mode of the acquisition layer
// collapses to exactly one classified FetchError so callers (HTTP layer,
// CLI) can present a single coherent message instead of a per-attempt trace.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure. The rotation client guarantees that a
// failed acquisition surfaces exactly one Kind.
type Kind string

const (
	// KindInvalidSymbol: the symbol failed syntactic validation. Fails
	// fast, no network call is made.
	KindInvalidSymbol Kind = "invalid_symbol"

	// KindInvalidArgument: a request parameter other than the symbol
	// failed validation (e.g. an unsupported intraday interval).
	KindInvalidArgument Kind = "invalid_argument"

	// KindConfiguration: the process is misconfigured (e.g. empty
	// credential pool). Not a runtime retry condition.
	KindConfiguration Kind = "configuration"

	// KindTransport: non-success HTTP status or an undecodable response
	// body. Never retried across credentials.
	KindTransport Kind = "transport"

	// KindProvider: the provider explicitly rejected the request with an
	// error message. Never retried.
	KindProvider Kind = "provider_rejected"

	// KindAllKeysRateLimited: every usable credential in the pool hit the
	// provider's call quota for this request.
	KindAllKeysRateLimited Kind = "all_keys_rate_limited"

	// KindAllKeysSkipped: every credential drew a non-quota advisory from
	// the provider; the last advisory text is carried for diagnosis.
	KindAllKeysSkipped Kind = "all_keys_skipped"

	// KindEmptyResult: a structurally successful response carried no data
	// for the symbol (likely an unknown ticker, or the resource is not
	// available for it).
	KindEmptyResult Kind = "empty_result"
)

// FetchError is the single classified failure value returned by the
// acquisition layer.
type FetchError struct {
	Kind     Kind
	Symbol   string
	Resource string
	Message  string
	Advisory string
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Symbol != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Symbol, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap exposes the underlying cause, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches FetchErrors by Kind, so callers can use errors.Is with a
// bare &FetchError{Kind: ...} sentinel.
func (e *FetchError) Is(target error) bool {
	var fe *FetchError
	if !errors.As(target, &fe) {
		return false
	}
	return fe.Kind == e.Kind
}

// KindOf extracts the Kind from an error chain. ok is false when the chain
// contains no FetchError.
func KindOf(err error) (Kind, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

// NewInvalidSymbol reports a syntactically invalid ticker symbol.
func NewInvalidSymbol(symbol string) *FetchError {
	return &FetchError{
		Kind:    KindInvalidSymbol,
		Symbol:  symbol,
		Message: "symbol must be 1-5 uppercase letters",
	}
}

// NewInvalidArgument reports an invalid request parameter.
func NewInvalidArgument(message string) *FetchError {
	return &FetchError{Kind: KindInvalidArgument, Message: message}
}

// NewConfiguration reports a process configuration error.
func NewConfiguration(message string) *FetchError {
	return &FetchError{Kind: KindConfiguration, Message: message}
}

// NewTransport reports a transport-level failure wrapping its cause.
func NewTransport(symbol string, err error) *FetchError {
	return &FetchError{
		Kind:    KindTransport,
		Symbol:  symbol,
		Message: "provider request failed",
		Err:     err,
	}
}

// NewProviderRejected reports an explicit provider error message.
func NewProviderRejected(symbol, message string) *FetchError {
	return &FetchError{Kind: KindProvider, Symbol: symbol, Message: message}
}

// NewAllKeysRateLimited reports quota exhaustion across the whole pool.
func NewAllKeysRateLimited(symbol string, poolSize int) *FetchError {
	return &FetchError{
		Kind:    KindAllKeysRateLimited,
		Symbol:  symbol,
		Message: fmt.Sprintf("all %d credentials are rate limited", poolSize),
	}
}

// NewAllKeysSkipped reports that every credential drew a non-quota
// advisory; advisory carries the last advisory text seen.
func NewAllKeysSkipped(symbol, advisory string) *FetchError {
	return &FetchError{
		Kind:     KindAllKeysSkipped,
		Symbol:   symbol,
		Message:  "all credentials were skipped on provider advisories",
		Advisory: advisory,
	}
}

// NewEmptyResult reports a data-free success response for a symbol.
func NewEmptyResult(symbol string, resource string) *FetchError {
	return &FetchError{
		Kind:     KindEmptyResult,
		Symbol:   symbol,
		Resource: resource,
		Message:  fmt.Sprintf("no %s data available", resource),
	}
}
