// Package provider implements the resilient acquisition layer against the
// upstream financial-data API: response classification, credential
// rotation under rate limiting, and normalization of the provider's
// loosely typed payloads into the domain records of pkg/contracts/domain.
//
// The provider returns HTTP 200 for almost everything, signalling quota
// exhaustion and rejections inside the JSON body instead. Classify is the
// single place that reads those signals; the client's rotation loop is
// driven entirely by its output.
package provider
