package research

// Query is a single generated search query with its research goal.
type Query struct {
	Query        string `json:"query"`
	ResearchGoal string `json:"research_goal"`
}

// Analysis is one audit trail entry, recorded per processed search. Provider
// is set only when multiple providers were queried. Analyses are a trace, not
// a set: the workflow never deduplicates them.
type Analysis struct {
	Query    string `json:"query"`
	Provider string `json:"provider,omitempty"`
	Analysis string `json:"analysis"`
}

// Processed holds the model's extraction for one (query, provider) search.
type Processed struct {
	Learnings         []string `json:"learnings"`
	FollowUpQuestions []string `json:"follow_up_questions"`
	Analysis          string   `json:"analysis"`
}

// Result is the aggregate accumulator threaded through the recursion and
// returned to the caller. Learnings, VisitedURLs and FollowUpQuestions never
// contain duplicates; first-seen order is preserved.
type Result struct {
	Learnings         []string   `json:"learnings"`
	VisitedURLs       []string   `json:"visited_urls"`
	FollowUpQuestions []string   `json:"follow_up_questions"`
	Analyses          []Analysis `json:"analyses"`
}

// Outcome is what Process returns. Exactly one of the failure message, the
// raw result, or both report and result is populated:
//   - raw-data-only runs set Result and leave Report empty
//   - normal runs set both Report and Result
//   - a failed run sets Report to a "Research failed: ..." message, Result nil
type Outcome struct {
	Report string  `json:"report,omitempty"`
	Result *Result `json:"result,omitempty"`
}

// branchResult is the partial result bubbled up by one fan-out branch.
type branchResult struct {
	learnings []string
	urls      []string
	followUps []string
	analyses  []Analysis
}
