package research

import (
	"context"

	"github.com/hupe1980/deepresearch/internal/util"
	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/provider"
	"github.com/hupe1980/deepresearch/search"
)

// noResultsAnalysis is returned when a search yielded no usable content.
const noResultsAnalysis = "No search results found to analyze."

// processFailedAnalysis is returned when the model's extraction could not be
// parsed.
const processFailedAnalysis = "Error processing search results."

// resultProcessor extracts learnings, follow-up questions and a free-text
// analysis from the raw results of one search.
type resultProcessor struct {
	provider         provider.Provider
	logger           logging.Logger
	maxLearnings     int
	maxFollowUps     int
	contentCharLimit int
}

type processResponse struct {
	Analysis          string   `json:"analysis"`
	Learnings         []string `json:"learnings"`
	FollowUpQuestions []string `json:"follow_up_questions"`
}

// process reshapes raw search content into a Processed result. Results with
// no usable markdown short-circuit without a model call; malformed model
// output degrades to empty learnings rather than failing the branch.
func (p *resultProcessor) process(ctx context.Context, query string, raw *search.Response) Processed {
	var contents []string
	if raw != nil {
		for _, item := range raw.Data {
			if item.Markdown == "" {
				continue
			}
			contents = append(contents, util.TrimPrompt(item.Markdown, p.contentCharLimit))
		}
	}

	if len(contents) == 0 {
		return Processed{Learnings: []string{}, FollowUpQuestions: []string{}, Analysis: noResultsAnalysis}
	}

	resp, err := p.provider.Call(ctx, provider.Request{
		SystemPrompt: researchSystemPrompt,
		UserPrompt:   buildProcessPrompt(query, contents),
		Temperature:  0.3,
	})
	if err != nil {
		p.logger.Error("search result processing call failed", "query", query, "error", err)
		return Processed{Learnings: []string{}, FollowUpQuestions: []string{}, Analysis: processFailedAnalysis}
	}

	var parsed processResponse
	if err := decodeResponse(resp.Text, &parsed); err != nil {
		p.logger.Error("failed to parse search result JSON", "query", query, "error", err)
		p.logger.Debug("raw processing response", "response", resp.Text)
		return Processed{Learnings: []string{}, FollowUpQuestions: []string{}, Analysis: processFailedAnalysis}
	}

	if len(parsed.Learnings) > p.maxLearnings {
		parsed.Learnings = parsed.Learnings[:p.maxLearnings]
	}
	if len(parsed.FollowUpQuestions) > p.maxFollowUps {
		parsed.FollowUpQuestions = parsed.FollowUpQuestions[:p.maxFollowUps]
	}
	analysis := parsed.Analysis
	if analysis == "" {
		analysis = "No analysis provided."
	}

	return Processed{
		Learnings:         parsed.Learnings,
		FollowUpQuestions: parsed.FollowUpQuestions,
		Analysis:          analysis,
	}
}
