package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"reservas/observability"
)

// ErrUnauthorized means the upstream rejected the credentials. Callers must
// clear the session when they see it.
var ErrUnauthorized = errors.New("upstream rejected credentials")

// ServerRejectedError carries the upstream `{error}` message for non-2xx
// responses other than 401.
type ServerRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ServerRejectedError) Error() string {
	return fmt.Sprintf("upstream rejected request (status %d): %s", e.StatusCode, e.Message)
}

// Clients holds the HTTP plumbing shared by the upstream API clients.
type Clients struct {
	baseURL    string
	httpClient *http.Client
}

func NewClients(baseURL string) *Clients {
	if baseURL == "" {
		panic("upstream base URL is empty")
	}
	return &Clients{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *Clients) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if correlationID := observability.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set("Correlation-ID", correlationID)
	}
	return req, nil
}
