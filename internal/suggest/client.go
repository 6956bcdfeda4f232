// Package suggest calls the emotion suggestion endpoint: free text in, a
// suggested emotion label out.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"whatfeeling/internal/logging"
)

// Path is the service route for suggestions.
const Path = "/api/emotions/generateSuggestion"

// maxResponseBytes bounds the plain-text answer.
const maxResponseBytes = 64 << 10

// ErrEmptyText is returned when there is nothing to analyze.
var ErrEmptyText = errors.New("text is empty")

// slowRequest is when a suggestion request is logged as slow.
const slowRequest = 3 * time.Second

// Request is the JSON body sent to the endpoint.
type Request struct {
	Text string `json:"text"`
}

// Client talks to the suggestion endpoint. Identical concurrent requests
// share one call; there is no caching and no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Suggest posts text and returns the trimmed plain-text suggestion.
func (c *Client) Suggest(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	v, err, _ := c.group.Do(text, func() (interface{}, error) {
		return c.post(ctx, text)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) post(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(Request{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	timer := logging.StartTimer(logging.CategorySuggest, "suggestion request")
	defer timer.StopWithThreshold(slowRequest)

	logging.Suggest("requesting suggestion (%d chars)", len(text))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.SuggestError("request failed: %v", err)
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		logging.SuggestError("unexpected status %d", resp.StatusCode)
		return "", fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
