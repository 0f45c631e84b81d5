// Package http contains the chi HTTP handlers for the REST API. Handlers
// translate requests into service calls and render JSON responses;
// failures flow through the shared RFC 7807 error handler. Handlers
// depend on narrow service interfaces so tests can substitute fakes.
package http
