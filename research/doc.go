// Package research implements a recursive deep research workflow: a
// bounded-depth, bounded-breadth, concurrency-limited fan-out/fan-in pipeline
// that queries one or more search providers, extracts learnings via a
// language model, recursively explores follow-up questions and synthesizes a
// final long-form report.
//
// Core pieces:
//   - Workflow: the public entry point (New + Process)
//   - queryGenerator: turns a topic plus prior learnings into search queries
//   - resultProcessor: extracts learnings / follow-ups from raw search results
//   - explorer: the recursive fan-out/fan-in engine with branch isolation
//   - reportGenerator: produces the final Markdown report with sources
//
// The workflow degrades gracefully at every stage: malformed model output and
// failed searches collapse into documented fallback values instead of
// propagating, so a run always yields a best-effort result. The single hard
// failure is constructing a Workflow without any search client.
package research
