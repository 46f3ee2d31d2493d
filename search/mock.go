package search

import (
	"context"
	"fmt"
)

// MockClient is a canned-response Client for tests and examples.
type MockClient struct {
	name      string
	responses map[string]*Response
	err       error
}

// NewMockClient creates a MockClient with the given provider name.
func NewMockClient(name string) *MockClient {
	return &MockClient{name: name, responses: make(map[string]*Response)}
}

// AddResponse registers a canned response for a query.
func (m *MockClient) AddResponse(query string, resp *Response) { m.responses[query] = resp }

// Fail makes every subsequent Search call return err.
func (m *MockClient) Fail(err error) { m.err = err }

// Name implements Client.
func (m *MockClient) Name() string { return m.name }

// Search implements Client; returns the canned response or a deterministic
// single-item result when no response was registered.
func (m *MockClient) Search(ctx context.Context, query string) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if m.err != nil {
		return nil, m.err
	}
	if resp, ok := m.responses[query]; ok {
		return resp, nil
	}
	return &Response{Data: []Item{{
		URL:      fmt.Sprintf("https://example.com/%s", m.name),
		Title:    fmt.Sprintf("Mock result for %s", query),
		Markdown: fmt.Sprintf("Mock content from %s for the query %q.", m.name, query),
	}}}, nil
}
