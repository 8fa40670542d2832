package httpx

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewTracedClient returns an HTTP client whose requests emit client spans
// named "<component> <METHOD> <path>".
func NewTracedClient(component string, timeout time.Duration) *http.Client {
	transport := otelhttp.NewTransport(
		http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return component + " " + r.Method + " " + r.URL.Path
		}),
	)
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
