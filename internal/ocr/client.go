// Package ocr implements the HTTP client for the external OCR engine.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"docr/internal/config"
	"docr/internal/domain"
)

const uploadPath = "/ocr/upload"

// Client sends file bytes to the OCR engine and parses its response.
// It implements port.TextExtractor.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates an OCR client from the engine config. The underlying
// http.Client carries the connection pool shared across all extraction
// calls, so one Client should be constructed per process.
func NewClient(cfg *config.EngineConfig) *Client {
	return newClient(cfg.BaseURL+uploadPath, cfg.Timeout())
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

// engineResponse models the OCR engine's JSON body: a results array whose
// records each carry a fragment of recognized text. Results is a pointer
// so an absent field is distinguishable from a present-but-empty array.
type engineResponse struct {
	Results *[]struct {
		Text string `json:"text"`
	} `json:"results"`
}

// Extract sends one file to the engine and returns the recognized text.
// The engine call is at-most-once; retry is left to outer layers because
// the engine is not guaranteed idempotent. Every failure mode comes back
// as an error: backend errors as *BackendError, everything else wrapped.
func (c *Client) Extract(ctx context.Context, item domain.UploadItem) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", item.FileName)
	if err != nil {
		return "", fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := part.Write(item.Bytes); err != nil {
		return "", fmt.Errorf("writing file bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ocr engine: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &BackendError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 500)}
	}

	return parseResponse(respBody)
}

// parseResponse concatenates every result record's text in array order,
// one per line, trimming trailing whitespace. Zero records is a valid
// empty extraction, not an error; a body without a results array is.
func parseResponse(body []byte) (string, error) {
	var resp engineResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling ocr response: %w", err)
	}
	if resp.Results == nil {
		return "", fmt.Errorf("ocr response missing results field: %s", truncate(string(body), 500))
	}

	var sb strings.Builder
	for _, r := range *resp.Results {
		sb.WriteString(r.Text)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), " \t\r\n"), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
