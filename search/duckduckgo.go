package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultDuckDuckGoBaseURL = "https://api.duckduckgo.com"

// DuckDuckGoOptions configure the DuckDuckGo client.
type DuckDuckGoOptions struct {
	BaseURL    string
	HTTPClient *http.Client
}

// DuckDuckGoClient implements Client using the DuckDuckGo Instant Answer API.
// Unlike the other providers it requires no API key, which makes it the
// zero-configuration fallback. Result text is short abstract snippets rather
// than full page content.
type DuckDuckGoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDuckDuckGoClient creates a DuckDuckGo client.
func NewDuckDuckGoClient(optFns ...func(o *DuckDuckGoOptions)) *DuckDuckGoClient {
	opts := DuckDuckGoOptions{
		BaseURL:    defaultDuckDuckGoBaseURL,
		HTTPClient: http.DefaultClient,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &DuckDuckGoClient{baseURL: opts.BaseURL, httpClient: opts.HTTPClient}
}

// Name implements Client.
func (c *DuckDuckGoClient) Name() string { return "duckduckgo" }

type duckduckgoTopic struct {
	FirstURL string `json:"FirstURL"`
	Text     string `json:"Text"`
}

type duckduckgoResponse struct {
	AbstractURL   string            `json:"AbstractURL"`
	AbstractText  string            `json:"AbstractText"`
	Heading       string            `json:"Heading"`
	RelatedTopics []duckduckgoTopic `json:"RelatedTopics"`
}

// Search implements Client.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string) (*Response, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	var payload duckduckgoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := &Response{}
	if payload.AbstractURL != "" && payload.AbstractText != "" {
		out.Data = append(out.Data, Item{URL: payload.AbstractURL, Title: payload.Heading, Markdown: payload.AbstractText})
	}
	for _, t := range payload.RelatedTopics {
		if t.FirstURL == "" || t.Text == "" {
			continue
		}
		out.Data = append(out.Data, Item{URL: t.FirstURL, Markdown: t.Text})
	}

	return out, nil
}
