package research

import (
	"time"

	"github.com/hupe1980/deepresearch/logging"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// MaxLearnings caps the learnings extracted per processed search.
	MaxLearnings int
	// MaxFollowUps caps the follow-up questions extracted per processed search.
	MaxFollowUps int
	// ContentCharLimit bounds each search document fed into a prompt.
	ContentCharLimit int
	// SearchTimeout is the per-attempt deadline for one provider request.
	SearchTimeout time.Duration
	// SearchAttempts is the number of tries per provider request.
	SearchAttempts int
	// RetryDelay is the fixed pause between search attempts.
	RetryDelay time.Duration
	// Logger receives workflow diagnostics.
	Logger logging.Logger
}

// RunOptions configure a single Process invocation. Zero values are replaced
// by documented defaults before the run starts; MultiProvider defaults to
// true when more than one search client is configured.
type RunOptions struct {
	// Interactive enables the clarifying-question step before research.
	Interactive bool
	// Breadth is the number of parallel search queries per recursion level.
	Breadth int
	// Depth is the number of recursive follow-up levels permitted.
	Depth int
	// Concurrency bounds simultaneous search requests per recursion level.
	Concurrency int
	// Temperature applies to the clarifying-question model call.
	Temperature float64
	// RawDataOnly skips report generation and returns the raw result.
	RawDataOnly bool
	// ReportModel optionally overrides the model for query generation and
	// report synthesis.
	ReportModel string
	// MultiProvider fans each query out across every active provider.
	MultiProvider bool
	// SearchProviders restricts the run to a named subset of clients.
	SearchProviders []string
}

const (
	defaultBreadth     = 3
	defaultDepth       = 2
	defaultConcurrency = 3
	defaultTemperature = 0.7

	defaultMaxLearnings     = 5
	defaultMaxFollowUps     = 3
	defaultContentCharLimit = 25000
	defaultSearchTimeout    = 20 * time.Second
	defaultSearchAttempts   = 3
	defaultRetryDelay       = 2 * time.Second
)

// resolveRunOptions fills the defaults for one run. multiProviderAuto is the
// auto-detected value derived from the configured client count; callers may
// still override it via the functional options.
func resolveRunOptions(multiProviderAuto bool, optFns ...func(o *RunOptions)) RunOptions {
	opts := RunOptions{
		Breadth:       defaultBreadth,
		Depth:         defaultDepth,
		Concurrency:   defaultConcurrency,
		Temperature:   defaultTemperature,
		MultiProvider: multiProviderAuto,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Breadth < 1 {
		opts.Breadth = defaultBreadth
	}
	if opts.Depth < 1 {
		opts.Depth = defaultDepth
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = defaultConcurrency
	}
	return opts
}
