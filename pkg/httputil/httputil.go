// Package httputil provides shared HTTP client construction utilities.
// It centralizes timeout defaults and transport instrumentation so that
// every outbound call is configured the same way.
package httputil

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultProviderTimeout is the transport-level HTTP timeout for hosted
// conversational-AI calls. Callers that need a tighter wall-clock ceiling
// impose it on top of this (see runtime/bounded).
const DefaultProviderTimeout = 60 * time.Second

// NewHTTPClient returns an *http.Client configured with the given timeout
// whose transport records OpenTelemetry client spans.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return NewHTTPClientWithTransport(timeout, http.DefaultTransport)
}

// NewHTTPClientWithTransport is NewHTTPClient over a caller-supplied base transport.
func NewHTTPClientWithTransport(timeout time.Duration, base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(base),
	}
}
