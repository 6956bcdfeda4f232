// Package taxonomy loads the emotion taxonomy from the emotions service or
// from a local file.
package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"whatfeeling/internal/emotion"
	"whatfeeling/internal/logging"
)

// ListPath is the service route that returns the full taxonomy.
const ListPath = "/api/emotions/listAll"

// Source fetches a taxonomy forest.
type Source interface {
	Fetch(ctx context.Context) ([]*emotion.Node, error)
}

// slowFetch is when a taxonomy fetch is logged as slow.
const slowFetch = 2 * time.Second

// HTTPSource reads the taxonomy from the emotions service.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSource creates a source for the service at baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the HTTP client.
func (s *HTTPSource) WithHTTPClient(c *http.Client) *HTTPSource {
	s.httpClient = c
	return s
}

// Fetch issues one GET to the list endpoint.
func (s *HTTPSource) Fetch(ctx context.Context) ([]*emotion.Node, error) {
	url := s.baseURL + ListPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	timer := logging.StartTimer(logging.CategoryTaxonomy, "taxonomy fetch")
	defer timer.StopWithThreshold(slowFetch)

	logging.TaxonomyDebug("GET %s", url)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	var roots []*emotion.Node
	if err := json.NewDecoder(resp.Body).Decode(&roots); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomy: %w", err)
	}
	return roots, nil
}

// FileSource reads a taxonomy from a JSON or YAML file in the service wire
// shape.
type FileSource struct {
	Path string
}

// Fetch reads and decodes the file. The format is chosen by extension;
// anything that is not .yaml/.yml is decoded as JSON.
func (s FileSource) Fetch(ctx context.Context) ([]*emotion.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var roots []*emotion.Node
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &roots)
	default:
		err = json.Unmarshal(data, &roots)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file %s: %w", s.Path, err)
	}
	return roots, nil
}

// StaticSource returns a fixed forest. Used for demos and tests.
type StaticSource []*emotion.Node

func (s StaticSource) Fetch(ctx context.Context) ([]*emotion.Node, error) {
	return s, ctx.Err()
}
