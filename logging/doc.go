// Package logging provides a minimal logging interface and adapters for the
// deep research workflow.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the workflow and its collaborators use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - ResearchLogger with contextual helpers for runs, branches and components
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	wf, err := research.New(provider, clients, func(o *research.Options) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
