// Package provider defines the provider-agnostic abstraction for the language
// model calls issued by the research workflow.
//
// Core goals:
//   - Keep the request/response shapes minimal and transport independent
//   - Allow per-call model overrides (e.g. a dedicated report model)
//   - Facilitate lightweight mocking for tests (MockProvider)
//
// Providers (e.g. OpenAI, Anthropic) implement the Provider interface from
// this package so the workflow remains decoupled from vendor SDKs.
package provider

import (
	"context"
	"fmt"
)

// Request captures a single prompt exchange sent to a language model.
type Request struct {
	SystemPrompt string  `json:"system_prompt"`
	UserPrompt   string  `json:"user_prompt"`
	Temperature  float64 `json:"temperature"`
	Model        string  `json:"model,omitempty"` // Optional per-call model override
}

// Usage captures token usage statistics for a response.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response holds the model output for a single call. Text is the raw
// completion, possibly a JSON object wrapped in Markdown code fences; callers
// are responsible for any structured parsing.
type Response struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Usage *Usage `json:"usage,omitempty"`
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Provider is the minimal interface required by the research workflow to
// drive generation.
type Provider interface {
	Call(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the provider implementation.
	Info() Info
}

// MockProvider is a lightweight in-memory Provider useful for tests & examples.
type MockProvider struct {
	info      Info
	responses map[string]string
}

// NewMockProvider constructs a MockProvider with canned response support.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a user prompt.
func (m *MockProvider) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Call implements Provider; returns the canned completion or an echo fallback.
func (m *MockProvider) Call(ctx context.Context, req Request) (*Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	text := m.responses[req.UserPrompt]
	if text == "" {
		text = fmt.Sprintf("Mock response to: %s", req.UserPrompt)
	}
	return &Response{Text: text, Model: m.info.Name}, nil
}

// Info implements Provider.
func (m *MockProvider) Info() Info { return m.info }
