// Package deepresearch provides a high-level façade over the research
// workflow and its collaborator abstractions (language model providers,
// search clients & logging). Most applications interact with this package by:
//  1. Creating a workflow via New() with a model provider and API keys
//  2. Invoking Process() with a research topic and optional run overrides
//
// The façade delegates orchestration to research.Workflow while keeping setup
// ergonomics concise. The DuckDuckGo client is enabled by default so the
// workflow is usable without any search API key; supply Firecrawl or Exa keys
// for full-content results.
package deepresearch

import (
	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/provider"
	"github.com/hupe1980/deepresearch/research"
	"github.com/hupe1980/deepresearch/search"
)

// Options configures the façade.
type Options struct {
	// FirecrawlAPIKey enables the Firecrawl search client when set.
	FirecrawlAPIKey string

	// ExaAPIKey enables the Exa search client when set.
	ExaAPIKey string

	// DisableDuckDuckGo drops the keyless DuckDuckGo client from the set.
	DisableDuckDuckGo bool

	// SearchClients adds or overrides named clients directly.
	SearchClients map[string]search.Client

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// WorkflowOptions are forwarded to research.New.
	WorkflowOptions []func(o *research.Options)
}

// New assembles the search client set and constructs a research workflow
// around the given model provider.
func New(p provider.Provider, optFns ...func(o *Options)) (*research.Workflow, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	clients := map[string]search.Client{}

	if !opts.DisableDuckDuckGo {
		ddg := search.NewDuckDuckGoClient()
		clients[ddg.Name()] = ddg
	}

	if opts.FirecrawlAPIKey != "" {
		fc, err := search.NewFirecrawlClient(opts.FirecrawlAPIKey)
		if err != nil {
			return nil, err
		}
		clients[fc.Name()] = fc
	}

	if opts.ExaAPIKey != "" {
		exa, err := search.NewExaClient(opts.ExaAPIKey)
		if err != nil {
			return nil, err
		}
		clients[exa.Name()] = exa
	}

	for name, client := range opts.SearchClients {
		clients[name] = client
	}

	workflowOpts := append([]func(o *research.Options){func(o *research.Options) {
		o.Logger = opts.Logger
	}}, opts.WorkflowOptions...)

	return research.New(p, clients, workflowOpts...)
}
