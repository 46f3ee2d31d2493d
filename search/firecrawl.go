package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultFirecrawlBaseURL = "https://api.firecrawl.dev/v1"

// FirecrawlOptions configure the Firecrawl client.
type FirecrawlOptions struct {
	BaseURL    string
	Limit      int
	HTTPClient *http.Client
}

// FirecrawlClient implements Client for the Firecrawl search API. Firecrawl
// scrapes each hit and returns its content as markdown, which maps directly
// onto the normalized Item shape.
type FirecrawlClient struct {
	apiKey     string
	baseURL    string
	limit      int
	httpClient *http.Client
}

// NewFirecrawlClient creates a Firecrawl client. The API key is required.
func NewFirecrawlClient(apiKey string, optFns ...func(o *FirecrawlOptions)) (*FirecrawlClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := FirecrawlOptions{
		BaseURL:    defaultFirecrawlBaseURL,
		Limit:      10,
		HTTPClient: http.DefaultClient,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &FirecrawlClient{
		apiKey:     apiKey,
		baseURL:    opts.BaseURL,
		limit:      opts.Limit,
		httpClient: opts.HTTPClient,
	}, nil
}

// Name implements Client.
func (c *FirecrawlClient) Name() string { return "firecrawl" }

type firecrawlRequest struct {
	Query         string                 `json:"query"`
	Limit         int                    `json:"limit"`
	ScrapeOptions map[string]interface{} `json:"scrapeOptions"`
}

type firecrawlResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		URL      string `json:"url"`
		Title    string `json:"title"`
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Search implements Client.
func (c *FirecrawlClient) Search(ctx context.Context, query string) (*Response, error) {
	body, err := json.Marshal(firecrawlRequest{
		Query: query,
		Limit: c.limit,
		ScrapeOptions: map[string]interface{}{
			"formats": []string{"markdown"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("firecrawl returned status %d", resp.StatusCode)
	}

	var payload firecrawlResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := &Response{Data: make([]Item, 0, len(payload.Data))}
	for _, d := range payload.Data {
		out.Data = append(out.Data, Item{URL: d.URL, Title: d.Title, Markdown: d.Markdown})
	}

	return out, nil
}
