// Package catalog talks to the institution's public course catalog feed. The
// sync job is its only consumer.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RawCourse is one course record as returned by the catalog feed.
type RawCourse struct {
	Subject           string `json:"subject"`
	CatalogNumber     string `json:"catalog_number"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Prerequisites     string `json:"prerequisites"`
	GradingBasis      string `json:"grading_basis"`
	ComponentCode     string `json:"component_code"`
	EnrollConsentCode string `json:"enroll_consent_code"`
	EnrollConsentDesc string `json:"enroll_consent_description"`
	DropConsentCode   string `json:"drop_consent_code"`
	DropConsentDesc   string `json:"drop_consent_description"`
	TermID            string `json:"term_id"`
}

// feedResponse is the feed's envelope.
type feedResponse struct {
	Data []RawCourse `json:"data"`
}

// Fetcher fetches the catalog for one term. The sync service depends on this
// interface so tests can substitute a fake feed.
type Fetcher interface {
	FetchTerm(ctx context.Context, termCode string) ([]RawCourse, error)
}

// Client is an authenticated HTTP client for the catalog feed.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a catalog client. baseURL is the feed root without a
// trailing slash, e.g. "https://api.example.edu/v3".
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchTerm retrieves every course offered in the given term.
func (c *Client) FetchTerm(ctx context.Context, termCode string) ([]RawCourse, error) {
	endpoint := fmt.Sprintf("%s/courses/%s.json?key=%s", c.baseURL, url.PathEscape(termCode), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch for term %s failed: %w", termCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog feed returned status %d for term %s: %s", resp.StatusCode, termCode, string(body))
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return feed.Data, nil
}
