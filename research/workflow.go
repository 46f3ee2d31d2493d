package research

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/deepresearch/internal/util"
	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/provider"
	"github.com/hupe1980/deepresearch/search"
)

// ErrNoSearchClients is returned by New when no search client is supplied.
// This is the one configuration error the workflow does not mask: nothing
// useful can run without at least one provider.
var ErrNoSearchClients = errors.New("research: at least one search client must be provided")

// Workflow is the public entry point for deep research runs. It wires the
// query generator, the recursive explorer and the report generator around a
// language model provider and one or more named search clients.
//
// A Workflow is safe for concurrent use; every Process call builds its own
// accumulator state.
type Workflow struct {
	provider provider.Provider
	clients  map[string]search.Client
	logger   logging.Logger

	queryGen  *queryGenerator
	processor *resultProcessor
	explorer  *explorer
	reporter  *reportGenerator
}

// New constructs a Workflow with optional overrides.
func New(p provider.Provider, clients map[string]search.Client, optFns ...func(o *Options)) (*Workflow, error) {
	if len(clients) == 0 {
		return nil, ErrNoSearchClients
	}

	opts := Options{
		MaxLearnings:     defaultMaxLearnings,
		MaxFollowUps:     defaultMaxFollowUps,
		ContentCharLimit: defaultContentCharLimit,
		SearchTimeout:    defaultSearchTimeout,
		SearchAttempts:   defaultSearchAttempts,
		RetryDelay:       defaultRetryDelay,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	queryGen := &queryGenerator{provider: p, logger: opts.Logger}
	processor := &resultProcessor{
		provider:         p,
		logger:           opts.Logger,
		maxLearnings:     opts.MaxLearnings,
		maxFollowUps:     opts.MaxFollowUps,
		contentCharLimit: opts.ContentCharLimit,
	}

	return &Workflow{
		provider:  p,
		clients:   clients,
		logger:    opts.Logger,
		queryGen:  queryGen,
		processor: processor,
		explorer: &explorer{
			clients:        clients,
			queryGen:       queryGen,
			processor:      processor,
			logger:         opts.Logger,
			searchTimeout:  opts.SearchTimeout,
			searchAttempts: opts.SearchAttempts,
			retryDelay:     opts.RetryDelay,
		},
		reporter: &reportGenerator{provider: p, logger: opts.Logger},
	}, nil
}

// Process runs the full research pipeline for one message. It never returns
// an error: pipeline failures are converted into an Outcome whose Report
// carries a "Research failed: ..." message, mirroring the graceful
// degradation applied throughout the workflow.
func (w *Workflow) Process(ctx context.Context, message string, optFns ...func(o *RunOptions)) (outcome *Outcome) {
	run := resolveRunOptions(len(w.clients) > 1, optFns...)
	runID := util.NewID()

	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("research workflow failed", "run_id", runID, "error", r)
			outcome = &Outcome{Report: fmt.Sprintf("Research failed: %v", r)}
		}
	}()

	w.logger.Info("research run started",
		"run_id", runID,
		"breadth", run.Breadth,
		"depth", run.Depth,
		"concurrency", run.Concurrency,
		"multi_provider", run.MultiProvider,
	)

	enhancedQuery := message
	if run.Interactive {
		// Best effort: the questions are appended to the query text rather
		// than answered, sharpening the first round of query generation.
		if questions := w.generateQuestions(ctx, message, run.Temperature); len(questions) > 0 {
			enhancedQuery = fmt.Sprintf("%s\nConsidering questions: %s", message, strings.Join(questions, ", "))
		}
	}

	result := w.explorer.explore(ctx, enhancedQuery, run.Breadth, run.Depth, run.Concurrency, run, accumulator{})

	if run.RawDataOnly {
		w.logger.Info("research run completed", "run_id", runID, "raw_data_only", true)
		return &Outcome{Result: &result}
	}

	report := w.reporter.generate(ctx, message, result, run.ReportModel)

	w.logger.Info("research run completed",
		"run_id", runID,
		"learnings", len(result.Learnings),
		"visited_urls", len(result.VisitedURLs),
	)

	return &Outcome{Report: report, Result: &result}
}

// generateQuestions asks the model for clarifying questions about the topic.
// Failures degrade to no questions.
func (w *Workflow) generateQuestions(ctx context.Context, topic string, temperature float64) []string {
	resp, err := w.provider.Call(ctx, provider.Request{
		SystemPrompt: researchSystemPrompt,
		UserPrompt:   buildQuestionsPrompt(topic),
		Temperature:  temperature,
	})
	if err != nil {
		w.logger.Error("clarifying question call failed", "error", err)
		return nil
	}

	var questions []string
	if err := decodeResponse(resp.Text, &questions); err != nil {
		w.logger.Error("failed to parse questions JSON", "error", err)
		return nil
	}
	return questions
}
