package research

import (
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/provider"
	"github.com/hupe1980/deepresearch/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(p provider.Provider) *resultProcessor {
	return &resultProcessor{
		provider:         p,
		logger:           logging.NoOpLogger{},
		maxLearnings:     defaultMaxLearnings,
		maxFollowUps:     defaultMaxFollowUps,
		contentCharLimit: defaultContentCharLimit,
	}
}

func TestResultProcessor_EmptyResultsShortCircuit(t *testing.T) {
	sp := newScriptedProvider(nil)
	p := newProcessor(sp)

	got := p.process(context.Background(), "foo", &search.Response{})

	assert.Empty(t, got.Learnings)
	assert.Empty(t, got.FollowUpQuestions)
	assert.Equal(t, "No search results found to analyze.", got.Analysis)
	// No LLM call may be made for empty results.
	assert.Empty(t, sp.requests())
}

func TestResultProcessor_SkipsItemsWithoutContent(t *testing.T) {
	sp := newScriptedProvider(nil)
	p := newProcessor(sp)

	got := p.process(context.Background(), "foo", &search.Response{Data: []search.Item{
		{URL: "https://a.example"}, // no markdown
		{URL: "https://b.example"},
	}})

	assert.Equal(t, "No search results found to analyze.", got.Analysis)
	assert.Empty(t, sp.requests())
}

func TestResultProcessor_ExtractsLearnings(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return processedJSON(t, "solid analysis",
			[]string{"l1", "l2"},
			[]string{"f1"},
		), nil
	})
	p := newProcessor(sp)

	got := p.process(context.Background(), "foo", &search.Response{Data: []search.Item{
		item("https://a.example", "content a"),
		item("https://b.example", "content b"),
	}})

	assert.Equal(t, []string{"l1", "l2"}, got.Learnings)
	assert.Equal(t, []string{"f1"}, got.FollowUpQuestions)
	assert.Equal(t, "solid analysis", got.Analysis)

	reqs := sp.requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].UserPrompt, "<content>\ncontent a\n</content>")
	assert.Contains(t, reqs[0].UserPrompt, "<content>\ncontent b\n</content>")
	assert.Contains(t, reqs[0].UserPrompt, "<query>foo</query>")
}

func TestResultProcessor_CapsLearningsAndFollowUps(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return processedJSON(t, "a",
			[]string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"},
			[]string{"f1", "f2", "f3", "f4"},
		), nil
	})
	p := newProcessor(sp)

	got := p.process(context.Background(), "foo", &search.Response{Data: []search.Item{item("u", "c")}})

	assert.Len(t, got.Learnings, defaultMaxLearnings)
	assert.Len(t, got.FollowUpQuestions, defaultMaxFollowUps)
}

func TestResultProcessor_TrimsLongContent(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return processedJSON(t, "a", nil, nil), nil
	})
	p := newProcessor(sp)
	p.contentCharLimit = 10

	long := strings.Repeat("x", 100)
	p.process(context.Background(), "foo", &search.Response{Data: []search.Item{item("u", long)}})

	reqs := sp.requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].UserPrompt, "<content>\nxxxxxxxxxx\n</content>")
	assert.NotContains(t, reqs[0].UserPrompt, strings.Repeat("x", 11))
}

func TestResultProcessor_FallbackOnMalformedJSON(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return "I could not produce JSON, sorry.", nil
	})
	p := newProcessor(sp)

	got := p.process(context.Background(), "foo", &search.Response{Data: []search.Item{item("u", "c")}})

	assert.Empty(t, got.Learnings)
	assert.Empty(t, got.FollowUpQuestions)
	assert.Equal(t, "Error processing search results.", got.Analysis)
}

func TestResultProcessor_NilResponse(t *testing.T) {
	sp := newScriptedProvider(nil)
	p := newProcessor(sp)

	got := p.process(context.Background(), "foo", nil)
	assert.Equal(t, "No search results found to analyze.", got.Analysis)
	assert.Empty(t, sp.requests())
}
