package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"stocklens/internal/infrastructure"
)

// ErrorHandler provides centralized error-to-HTTP mapping with logging.
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

// NewErrorHandler creates a new error handler. includeStack adds stack
// traces to responses and should only be enabled in development.
func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ErrorToProblem(err, r)
	problem.WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("stack", string(debug.Stack()))
	}

	if problem.Status == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "60")
	}

	problem.WriteResponse(w)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details.
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	var fe *FetchError
	if errors.As(err, &fe) {
		return h.fetchErrorToProblem(fe, r)
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing your request",
		r.URL.Path,
	)
}

// fetchErrorToProblem maps the acquisition taxonomy onto HTTP statuses.
func (h *ErrorHandler) fetchErrorToProblem(fe *FetchError, r *http.Request) *ProblemDetails {
	instance := r.URL.Path

	switch fe.Kind {
	case KindInvalidSymbol:
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeValidation,
			"Invalid Symbol",
			fe.Message,
			instance,
		).WithExtension("symbol", fe.Symbol)

	case KindInvalidArgument:
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeValidation,
			"Invalid Parameter",
			fe.Message,
			instance,
		)

	case KindConfiguration:
		return NewProblemDetails(
			http.StatusInternalServerError,
			TypeInternal,
			"Configuration Error",
			fe.Message,
			instance,
		)

	case KindTransport:
		return NewProblemDetails(
			http.StatusBadGateway,
			TypeProviderTransport,
			"Provider Unreachable",
			"The data provider could not be reached or returned an unreadable response",
			instance,
		)

	case KindProvider:
		return NewProblemDetails(
			http.StatusBadGateway,
			TypeProviderRejected,
			"Provider Rejected Request",
			fe.Message,
			instance,
		).WithExtension("symbol", fe.Symbol)

	case KindAllKeysRateLimited:
		return NewProblemDetails(
			http.StatusTooManyRequests,
			TypeProviderQuota,
			"Provider Quota Exhausted",
			"All configured API credentials are rate limited. Please try again later.",
			instance,
		).WithExtension("retry_after", 60)

	case KindAllKeysSkipped:
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			TypeProviderSkipped,
			"Provider Advisory",
			"The provider declined this request on every configured credential",
			instance,
		).WithExtension("advisory", fe.Advisory)

	case KindEmptyResult:
		return NewProblemDetails(
			http.StatusNotFound,
			TypeDataNotFound,
			"No Data Available",
			fe.Message,
			instance,
		).WithExtension("symbol", fe.Symbol).WithExtension("resource", fe.Resource)
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		fe.Message,
		instance,
	)
}

// HandlePanic recovers from panics and responds with an RFC 7807 error.
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	problem.WriteResponse(w)
}
