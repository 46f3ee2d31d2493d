package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultExaBaseURL = "https://api.exa.ai"

// ExaOptions configure the Exa client.
type ExaOptions struct {
	BaseURL    string
	NumResults int
	HTTPClient *http.Client
}

// ExaClient implements Client for the Exa neural search API. Exa returns the
// page text with each hit when contents retrieval is requested; the text is
// mapped onto the Markdown field of the normalized Item.
type ExaClient struct {
	apiKey     string
	baseURL    string
	numResults int
	httpClient *http.Client
}

// NewExaClient creates an Exa client. The API key is required.
func NewExaClient(apiKey string, optFns ...func(o *ExaOptions)) (*ExaClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts := ExaOptions{
		BaseURL:    defaultExaBaseURL,
		NumResults: 10,
		HTTPClient: http.DefaultClient,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &ExaClient{
		apiKey:     apiKey,
		baseURL:    opts.BaseURL,
		numResults: opts.NumResults,
		httpClient: opts.HTTPClient,
	}, nil
}

// Name implements Client.
func (c *ExaClient) Name() string { return "exa" }

type exaRequest struct {
	Query      string          `json:"query"`
	NumResults int             `json:"numResults"`
	Contents   map[string]bool `json:"contents"`
}

type exaResponse struct {
	Results []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"results"`
}

// Search implements Client.
func (c *ExaClient) Search(ctx context.Context, query string) (*Response, error) {
	body, err := json.Marshal(exaRequest{
		Query:      query,
		NumResults: c.numResults,
		Contents:   map[string]bool{"text": true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exa returned status %d", resp.StatusCode)
	}

	var payload exaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := &Response{Data: make([]Item, 0, len(payload.Results))}
	for _, r := range payload.Results {
		out.Data = append(out.Data, Item{URL: r.URL, Title: r.Title, Markdown: r.Text})
	}

	return out, nil
}
