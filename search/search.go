// Package search defines the search client abstraction consumed by the
// research workflow together with concrete HTTP clients for Firecrawl, Exa
// and DuckDuckGo.
//
// Every client normalizes provider payloads into a Response holding url +
// markdown pairs; the workflow treats everything else as opaque. Clients are
// safe for concurrent use.
package search

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned by client constructors when a required API key
// is absent.
var ErrMissingAPIKey = errors.New("search: missing API key")

// Item is a single search hit. Only URL and Markdown are consumed by the
// workflow; Title is carried for display purposes.
type Item struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Markdown string `json:"markdown"`
}

// Response is the normalized result set returned by a Client.
type Response struct {
	Data []Item `json:"data"`
}

// Client is the interface implemented by all search providers. The supplied
// context carries the per-request deadline; implementations must honor it.
type Client interface {
	Search(ctx context.Context, query string) (*Response, error)

	// Name returns the provider name ("firecrawl", "exa", ...).
	Name() string
}
