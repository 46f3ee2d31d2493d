package research

import (
	"context"

	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/provider"
)

// queryGenerator turns a topic plus prior learnings into a small set of
// distinct search queries with research goals.
type queryGenerator struct {
	provider provider.Provider
	logger   logging.Logger
}

type queryGenResponse struct {
	Queries []Query `json:"queries"`
}

// generate asks the model for up to maxQueries queries. It never fails: on a
// model error or malformed JSON it falls back to a single synthetic query for
// the topic itself so the pipeline keeps moving.
func (g *queryGenerator) generate(ctx context.Context, topic string, maxQueries int, priorLearnings []string, model string) []Query {
	fallback := []Query{{Query: topic, ResearchGoal: "Main topic research"}}

	resp, err := g.provider.Call(ctx, provider.Request{
		SystemPrompt: researchSystemPrompt,
		UserPrompt:   buildQueryGenPrompt(topic, maxQueries, priorLearnings),
		Temperature:  0.3,
		Model:        model,
	})
	if err != nil {
		g.logger.Error("query generation call failed", "error", err)
		return fallback
	}

	var parsed queryGenResponse
	if err := decodeResponse(resp.Text, &parsed); err != nil {
		g.logger.Error("failed to parse query JSON", "error", err)
		g.logger.Debug("raw query response", "response", resp.Text)
		return fallback
	}

	queries := parsed.Queries
	if len(queries) == 0 {
		return fallback
	}
	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	return queries
}
