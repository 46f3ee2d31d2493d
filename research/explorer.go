package research

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/deepresearch/internal/util"
	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/search"
)

// explorer is the recursive fan-out/fan-in engine. For each recursion level
// it generates up to breadth queries, searches them concurrently under a
// level-scoped semaphore and, while depth remains and follow-up questions
// exist, recurses with halved breadth. Branch failures degrade to empty
// partial results; they never abort siblings.
type explorer struct {
	clients        map[string]search.Client
	queryGen       *queryGenerator
	processor      *resultProcessor
	logger         logging.Logger
	searchTimeout  time.Duration
	searchAttempts int
	retryDelay     time.Duration
}

// accumulator is the inherited state threaded through the recursion. Each
// level receives its own copy; no slice is shared across concurrent branches.
type accumulator struct {
	learnings []string
	urls      []string
	analyses  []Analysis
}

type namedClient struct {
	name   string
	client search.Client
}

// activeClients resolves the providers for this run. A requested subset is
// intersected with the configured clients; an empty intersection falls back
// to all of them. Names are sorted so dispatch order is stable, which keeps
// first-seen-wins dedup deterministic.
func (e *explorer) activeClients(run RunOptions) []namedClient {
	selected := map[string]search.Client{}
	if run.MultiProvider && len(run.SearchProviders) > 0 {
		for _, name := range run.SearchProviders {
			if client, ok := e.clients[name]; ok {
				selected[name] = client
			}
		}
	}
	if len(selected) == 0 {
		selected = e.clients
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	active := make([]namedClient, 0, len(names))
	for _, name := range names {
		active = append(active, namedClient{name: name, client: selected[name]})
	}
	return active
}

// explore runs one recursion level and returns the merged aggregate of the
// inherited state plus every branch below it.
func (e *explorer) explore(ctx context.Context, query string, breadth, depth, concurrency int, run RunOptions, acc accumulator) Result {
	start := time.Now()

	queries := e.queryGen.generate(ctx, query, breadth, acc.learnings, run.ReportModel)
	active := e.activeClients(run)

	// Level-scoped semaphore; recursive sub-calls establish their own.
	sem := make(chan struct{}, concurrency)

	results := make([]branchResult, len(queries))
	var wg sync.WaitGroup

	if len(active) == 1 {
		for i, rq := range queries {
			wg.Add(1)
			go func(i int, rq Query) {
				defer wg.Done()
				results[i] = e.processQuery(ctx, sem, rq, active[0], breadth, depth, concurrency, run, acc)
			}(i, rq)
		}
	} else {
		for i, rq := range queries {
			wg.Add(1)
			go func(i int, rq Query) {
				defer wg.Done()
				results[i] = e.processQueryMulti(ctx, sem, rq, active, breadth, depth, concurrency, run, acc)
			}(i, rq)
		}
	}

	wg.Wait()

	// Fan-in: merge in dispatch order so dedup is first-seen-wins.
	allLearnings := slices.Clone(acc.learnings)
	allURLs := slices.Clone(acc.urls)
	var allQuestions []string
	allAnalyses := slices.Clone(acc.analyses)
	for _, r := range results {
		allLearnings = append(allLearnings, r.learnings...)
		allURLs = append(allURLs, r.urls...)
		allQuestions = append(allQuestions, r.followUps...)
		allAnalyses = append(allAnalyses, r.analyses...)
	}

	merged := Result{
		Learnings:         util.Dedupe(allLearnings),
		VisitedURLs:       util.Dedupe(allURLs),
		FollowUpQuestions: util.Dedupe(allQuestions),
		Analyses:          allAnalyses,
	}

	e.logger.Info("exploration level completed",
		"breadth", breadth,
		"depth", depth,
		"learnings", len(merged.Learnings),
		"visited_urls", len(merged.VisitedURLs),
		"duration", time.Since(start),
	)

	return merged
}

// processQuery runs the single-provider branch for one query: search with
// retries, extract learnings, then either recurse on follow-up questions or
// bubble up this level's partial result. Any failure collapses the branch
// into an empty partial.
func (e *explorer) processQuery(ctx context.Context, sem chan struct{}, rq Query, nc namedClient, breadth, depth, concurrency int, run RunOptions, acc accumulator) branchResult {
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		e.logger.Error("branch cancelled", "query", rq.Query, "error", ctx.Err())
		return branchResult{}
	}
	defer func() { <-sem }()

	raw, err := e.searchWithRetry(ctx, nc, rq.Query)
	if err != nil {
		e.logger.Error("error processing query", "query", rq.Query, "error", err)
		return branchResult{}
	}

	urls := extractURLs(raw)
	processed := e.processor.process(ctx, rq.Query, raw)

	newBreadth := max(1, breadth/2)
	newDepth := depth - 1

	if newDepth > 0 && len(processed.FollowUpQuestions) > 0 {
		followUps := processed.FollowUpQuestions
		if len(followUps) > newBreadth {
			followUps = followUps[:newBreadth]
		}

		deeper := e.explore(ctx, buildFollowUpQuery(rq.ResearchGoal, followUps), newBreadth, newDepth, concurrency, run, accumulator{
			learnings: concat(acc.learnings, processed.Learnings),
			urls:      concat(acc.urls, urls),
			analyses:  append(slices.Clone(acc.analyses), Analysis{Query: rq.Query, Analysis: processed.Analysis}),
		})

		// The recursive aggregate, not this level's partial, bubbles up.
		return branchResult{
			learnings: deeper.Learnings,
			urls:      deeper.VisitedURLs,
			followUps: deeper.FollowUpQuestions,
			analyses:  deeper.Analyses,
		}
	}

	return branchResult{
		learnings: processed.Learnings,
		urls:      urls,
		followUps: processed.FollowUpQuestions,
		analyses:  []Analysis{{Query: rq.Query, Analysis: processed.Analysis}},
	}
}

// providerResult is the per-provider partial inside a multi-provider branch.
type providerResult struct {
	learnings []string
	urls      []string
	followUps []string
	analysis  string
	provider  string
}

// searchWithProvider searches one query against one provider under the
// level semaphore. Failures are folded into the analysis text so the trace
// records which provider degraded.
func (e *explorer) searchWithProvider(ctx context.Context, sem chan struct{}, rq Query, nc namedClient) providerResult {
	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return providerResult{analysis: fmt.Sprintf("Error with %s: %v", nc.name, ctx.Err()), provider: nc.name}
	}
	defer func() { <-sem }()

	raw, err := e.searchWithRetry(ctx, nc, rq.Query)
	if err != nil {
		e.logger.Error("error processing query with provider", "query", rq.Query, "provider", nc.name, "error", err)
		return providerResult{analysis: fmt.Sprintf("Error with %s: %v", nc.name, err), provider: nc.name}
	}

	// Tag the query context with the provider for disambiguation.
	processed := e.processor.process(ctx, fmt.Sprintf("%s [%s]", rq.Query, nc.name), raw)

	return providerResult{
		learnings: processed.Learnings,
		urls:      extractURLs(raw),
		followUps: processed.FollowUpQuestions,
		analysis:  processed.Analysis,
		provider:  nc.name,
	}
}

// processQueryMulti runs one query against every active provider in parallel,
// combines the partials and then applies the same recursion test as the
// single-provider branch using the combined follow-up list.
func (e *explorer) processQueryMulti(ctx context.Context, sem chan struct{}, rq Query, active []namedClient, breadth, depth, concurrency int, run RunOptions, acc accumulator) branchResult {
	partials := make([]providerResult, len(active))
	var wg sync.WaitGroup
	for i, nc := range active {
		wg.Add(1)
		go func(i int, nc namedClient) {
			defer wg.Done()
			partials[i] = e.searchWithProvider(ctx, sem, rq, nc)
		}(i, nc)
	}
	wg.Wait()

	var combined branchResult
	for _, pr := range partials {
		combined.learnings = append(combined.learnings, pr.learnings...)
		combined.urls = append(combined.urls, pr.urls...)
		combined.followUps = append(combined.followUps, pr.followUps...)
		combined.analyses = append(combined.analyses, Analysis{Query: rq.Query, Provider: pr.provider, Analysis: pr.analysis})
	}
	combined.followUps = util.Dedupe(combined.followUps)

	newBreadth := max(1, breadth/2)
	newDepth := depth - 1

	if newDepth > 0 && len(combined.followUps) > 0 {
		followUps := combined.followUps
		if len(followUps) > newBreadth {
			followUps = followUps[:newBreadth]
		}

		deeper := e.explore(ctx, buildFollowUpQuery(rq.ResearchGoal, followUps), newBreadth, newDepth, concurrency, run, accumulator{
			learnings: concat(acc.learnings, combined.learnings),
			urls:      concat(acc.urls, combined.urls),
			analyses:  append(slices.Clone(acc.analyses), combined.analyses...),
		})

		return branchResult{
			learnings: deeper.Learnings,
			urls:      deeper.VisitedURLs,
			followUps: deeper.FollowUpQuestions,
			analyses:  deeper.Analyses,
		}
	}

	return combined
}

// searchWithRetry issues one provider request with a fixed per-attempt
// timeout, pausing retryDelay between attempts and returning the last error
// after the final attempt.
func (e *explorer) searchWithRetry(ctx context.Context, nc namedClient, query string) (*search.Response, error) {
	var lastErr error
	for attempt := 1; attempt <= e.searchAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(e.retryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		e.logger.Debug("searching", "provider", nc.name, "query", query, "attempt", attempt)

		callCtx, cancel := context.WithTimeout(ctx, e.searchTimeout)
		resp, err := nc.client.Search(callCtx, query)
		cancel()
		if err == nil {
			return resp, nil
		}

		lastErr = err
		e.logger.Warn("search attempt failed", "provider", nc.name, "query", query, "attempt", attempt, "error", err)
	}
	return nil, lastErr
}

func extractURLs(raw *search.Response) []string {
	if raw == nil {
		return nil
	}
	urls := make([]string, 0, len(raw.Data))
	for _, item := range raw.Data {
		if item.URL != "" {
			urls = append(urls, item.URL)
		}
	}
	return urls
}

func buildFollowUpQuery(researchGoal string, questions []string) string {
	return strings.Join([]string{
		fmt.Sprintf("Previous research goal: %s", researchGoal),
		"Follow-up questions to explore:",
		util.BulletList(questions),
	}, "\n")
}

func concat(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}
