package provider

import (
	"encoding/json"
	"strings"
)

// Classification assigns one of four variants to a raw provider payload.
type Classification int

const (
	// ClassSuccess: the payload carries data and passes through unchanged
	// for normalization.
	ClassSuccess Classification = iota
	// ClassHardError: the provider explicitly rejected the request.
	// Never retried.
	ClassHardError
	// ClassRateLimited: the payload is a quota advisory for the credential
	// used. Retried with the next credential.
	ClassRateLimited
	// ClassAmbiguousAdvisory: the provider said something, but not clearly
	// about quota. Treated as retryable since it may be credential
	// specific.
	ClassAmbiguousAdvisory
)

// String returns the classification name used in logs and metrics.
func (c Classification) String() string {
	switch c {
	case ClassSuccess:
		return "success"
	case ClassHardError:
		return "hard_error"
	case ClassRateLimited:
		return "rate_limited"
	case ClassAmbiguousAdvisory:
		return "ambiguous_advisory"
	}
	return "unknown"
}

// ClassificationResult is the outcome of classifying one attempt's payload.
// Message carries the provider's error text for ClassHardError; Advisory
// carries the advisory text for the two advisory classes.
type ClassificationResult struct {
	Class    Classification
	Message  string
	Advisory string
}

// envelope is the control-plane slice of any provider payload. The
// provider reports failures inside an HTTP 200 body using these fields;
// data fields are ignored here.
type envelope struct {
	ErrorMessage string `json:"Error Message"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
}

// quotaMarkers are the case-insensitive substrings that mark an advisory
// as quota exhaustion rather than some other note. This exact set is the
// only signal separating "rotate to the next credential" from "give up",
// so treat changes with care.
var quotaMarkers = []string{"frequency", "call limit", "api call"}

// Classify inspects a raw payload and assigns a classification.
//
// Precedence: an explicit error message wins; then the advisory fields
// ("Note" first, "Information" second) are checked for quota markers; an
// advisory without a quota marker is ambiguous; anything else is success.
// A body that is not valid JSON is a transport failure and returns an
// error instead of a classification.
func Classify(body []byte) (ClassificationResult, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ClassificationResult{}, err
	}

	if env.ErrorMessage != "" {
		return ClassificationResult{Class: ClassHardError, Message: env.ErrorMessage}, nil
	}

	advisory := env.Note
	if advisory == "" {
		advisory = env.Information
	}
	if advisory != "" {
		lower := strings.ToLower(advisory)
		for _, marker := range quotaMarkers {
			if strings.Contains(lower, marker) {
				return ClassificationResult{Class: ClassRateLimited, Advisory: advisory}, nil
			}
		}
		return ClassificationResult{Class: ClassAmbiguousAdvisory, Advisory: advisory}, nil
	}

	return ClassificationResult{Class: ClassSuccess}, nil
}
