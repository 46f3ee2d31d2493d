package research

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryGen(p provider.Provider) *queryGenerator {
	return &queryGenerator{provider: p, logger: logging.NoOpLogger{}}
}

func TestQueryGenerator_Generate(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return queriesJSON(t,
			Query{Query: "q1", ResearchGoal: "g1"},
			Query{Query: "q2", ResearchGoal: "g2"},
		), nil
	})

	queries := newQueryGen(sp).generate(context.Background(), "topic", 3, nil, "")
	require.Len(t, queries, 2)
	assert.Equal(t, "q1", queries[0].Query)
	assert.Equal(t, "g2", queries[1].ResearchGoal)
}

func TestQueryGenerator_TruncatesToMax(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return queriesJSON(t,
			Query{Query: "q1", ResearchGoal: "g1"},
			Query{Query: "q2", ResearchGoal: "g2"},
			Query{Query: "q3", ResearchGoal: "g3"},
		), nil
	})

	queries := newQueryGen(sp).generate(context.Background(), "topic", 2, nil, "")
	assert.Len(t, queries, 2)
}

func TestQueryGenerator_StripsCodeFences(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return "```json\n" + queriesJSON(t, Query{Query: "q1", ResearchGoal: "g1"}) + "\n```", nil
	})

	queries := newQueryGen(sp).generate(context.Background(), "topic", 3, nil, "")
	require.Len(t, queries, 1)
	assert.Equal(t, "q1", queries[0].Query)
}

func TestQueryGenerator_FallbackOnMalformedJSON(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return "here are some great queries for you!", nil
	})

	queries := newQueryGen(sp).generate(context.Background(), "my topic", 3, nil, "")
	require.Len(t, queries, 1)
	assert.Equal(t, "my topic", queries[0].Query)
	assert.Equal(t, "Main topic research", queries[0].ResearchGoal)
}

func TestQueryGenerator_FallbackOnProviderError(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return "", errors.New("rate limited")
	})

	queries := newQueryGen(sp).generate(context.Background(), "my topic", 3, nil, "")
	require.Len(t, queries, 1)
	assert.Equal(t, "my topic", queries[0].Query)
}

func TestQueryGenerator_PromptIncludesPriorLearnings(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return queriesJSON(t, Query{Query: "q1", ResearchGoal: "g1"}), nil
	})

	newQueryGen(sp).generate(context.Background(), "topic", 3, []string{"fact one", "fact two"}, "")

	reqs := sp.requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].UserPrompt, "- fact one")
	assert.Contains(t, reqs[0].UserPrompt, "- fact two")
	assert.InDelta(t, 0.3, reqs[0].Temperature, 1e-9)
}

func TestQueryGenerator_ForwardsModelOverride(t *testing.T) {
	sp := newScriptedProvider(func(req provider.Request) (string, error) {
		return queriesJSON(t, Query{Query: "q1", ResearchGoal: "g1"}), nil
	})

	newQueryGen(sp).generate(context.Background(), "topic", 3, nil, "report-model-x")

	reqs := sp.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "report-model-x", reqs[0].Model)
}
