// Package compare implements the HTTP client for the external
// text-comparison engine.
package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docr/internal/config"
	"docr/internal/domain"
	"docr/internal/port"
)

const comparePath = "/ocr/compare"

// Client sends a query text plus candidate documents to the comparison
// engine and passes its structured result through opaquely. It implements
// port.TextComparer.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a comparison client from the engine config.
func NewClient(cfg *config.EngineConfig) *Client {
	return newClient(cfg.BaseURL+comparePath, cfg.Timeout())
}

// NewClientWithEndpoint creates a client pointing at a custom endpoint
// (for testing).
func NewClientWithEndpoint(endpoint string, timeout time.Duration) *Client {
	return newClient(endpoint, timeout)
}

func newClient(endpoint string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// compareRequest is the engine's wire shape.
type compareRequest struct {
	Text      string                       `json:"text"`
	Documents []domain.ComparisonCandidate `json:"documents"`
}

// Compare validates the request and forwards it to the engine. The
// missing-input check runs before any network I/O so callers can tell a
// bad request apart from a backend failure.
func (c *Client) Compare(ctx context.Context, req port.ComparisonRequest) (json.RawMessage, error) {
	if req.Text == "" || len(req.Candidates) == 0 {
		return nil, domain.ErrMissingComparisonInput
	}

	bodyBytes, err := json.Marshal(compareRequest{Text: req.Text, Documents: req.Candidates})
	if err != nil {
		return nil, fmt.Errorf("marshaling compare request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrComparisonFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrComparisonFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: comparison engine error (status %d)", domain.ErrComparisonFailed, resp.StatusCode)
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%w: malformed response body", domain.ErrComparisonFailed)
	}

	return json.RawMessage(respBody), nil
}
