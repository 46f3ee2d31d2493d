package research

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/deepresearch/provider"
	"github.com/hupe1980/deepresearch/search"
)

// scriptedProvider is a provider.Provider whose behavior is driven by a
// handler function. It records every request for assertions.
type scriptedProvider struct {
	mu      sync.Mutex
	calls   []provider.Request
	handler func(req provider.Request) (string, error)
}

func newScriptedProvider(handler func(req provider.Request) (string, error)) *scriptedProvider {
	if handler == nil {
		handler = func(provider.Request) (string, error) { return "{}", nil }
	}
	return &scriptedProvider{handler: handler}
}

func (s *scriptedProvider) Call(_ context.Context, req provider.Request) (*provider.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	text, err := s.handler(req)
	if err != nil {
		return nil, err
	}
	return &provider.Response{Text: text, Model: "scripted"}, nil
}

func (s *scriptedProvider) Info() provider.Info {
	return provider.Info{Name: "scripted", Provider: "mock"}
}

func (s *scriptedProvider) requests() []provider.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]provider.Request, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *scriptedProvider) countMatching(substr string) int {
	n := 0
	for _, req := range s.requests() {
		if strings.Contains(req.UserPrompt, substr) {
			n++
		}
	}
	return n
}

// Prompt markers used to classify scripted calls by call site.
const (
	queryGenMarker  = "SERP queries"
	processMarker   = "Analyze these search results"
	reportMarker    = "write a final report"
	questionsMarker = "better understand the research needs"
)

// fakeSearchClient implements search.Client with per-query canned responses
// and per-query permanent failures. Every call is counted.
type fakeSearchClient struct {
	mu        sync.Mutex
	name      string
	responses map[string]*search.Response
	failing   map[string]error
	callCount map[string]int
}

func newFakeSearchClient(name string) *fakeSearchClient {
	return &fakeSearchClient{
		name:      name,
		responses: map[string]*search.Response{},
		failing:   map[string]error{},
		callCount: map[string]int{},
	}
}

func (f *fakeSearchClient) Name() string { return f.name }

func (f *fakeSearchClient) respond(query string, items ...search.Item) {
	f.responses[query] = &search.Response{Data: items}
}

func (f *fakeSearchClient) failFor(query string, err error) { f.failing[query] = err }

func (f *fakeSearchClient) calls(query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount[query]
}

func (f *fakeSearchClient) Search(_ context.Context, query string) (*search.Response, error) {
	f.mu.Lock()
	f.callCount[query]++
	f.mu.Unlock()

	if err, ok := f.failing[query]; ok {
		return nil, err
	}
	if resp, ok := f.responses[query]; ok {
		return resp, nil
	}
	return &search.Response{}, nil
}

func item(url, markdown string) search.Item {
	return search.Item{URL: url, Markdown: markdown}
}

func queriesJSON(t *testing.T, queries ...Query) string {
	t.Helper()
	b, err := json.Marshal(map[string][]Query{"queries": queries})
	if err != nil {
		t.Fatalf("marshal queries: %v", err)
	}
	return string(b)
}

func processedJSON(t *testing.T, analysis string, learnings, followUps []string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"analysis":            analysis,
		"learnings":           learnings,
		"follow_up_questions": followUps,
	})
	if err != nil {
		t.Fatalf("marshal processed: %v", err)
	}
	return string(b)
}

func reportJSON(t *testing.T, markdown string) string {
	t.Helper()
	b, err := json.Marshal(map[string]string{"reportMarkdown": markdown})
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	return string(b)
}

// newTestWorkflow wires a workflow with fast retries suitable for tests.
func newTestWorkflow(t *testing.T, p provider.Provider, clients map[string]search.Client) *Workflow {
	t.Helper()
	wf, err := New(p, clients, func(o *Options) {
		o.RetryDelay = 0
	})
	if err != nil {
		t.Fatalf("new workflow: %v", err)
	}
	return wf
}

func singleClient(c search.Client) map[string]search.Client {
	return map[string]search.Client{c.Name(): c}
}

func assertNoDuplicates(t *testing.T, items []string, label string) {
	t.Helper()
	seen := map[string]struct{}{}
	for _, item := range items {
		if _, ok := seen[item]; ok {
			t.Fatalf("duplicate %s: %q", label, item)
		}
		seen[item] = struct{}{}
	}
}
