package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hupe1980/deepresearch"
	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/provider"
	"github.com/hupe1980/deepresearch/provider/anthropic"
	"github.com/hupe1980/deepresearch/provider/openai"
	"github.com/hupe1980/deepresearch/research"
)

var (
	topic        string
	providerName string
	breadth      int
	depth        int
	concurrency  int
	interactive  bool
	rawDataOnly  bool
	reportModel  string
	verbose      bool
)

func main() {
	// It's okay if .env doesn't exist, as long as env vars are set.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "deepresearch",
		Short: "Recursive deep research from the terminal",
		Long: `deepresearch runs a bounded-depth, bounded-breadth recursive web research
workflow: it generates search queries, extracts learnings via a language
model, follows up on open questions and writes a final Markdown report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if topic == "" {
				return fmt.Errorf("--topic must not be empty")
			}
			return run(cmd.Context())
		},
	}

	rootCmd.Flags().StringVarP(&topic, "topic", "t", "", "research topic (required)")
	rootCmd.Flags().StringVarP(&providerName, "provider", "p", "openai", "model provider: openai or anthropic")
	rootCmd.Flags().IntVarP(&breadth, "breadth", "b", 3, "parallel search queries per level")
	rootCmd.Flags().IntVarP(&depth, "depth", "d", 2, "recursive follow-up levels")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 3, "max concurrent searches per level")
	rootCmd.Flags().BoolVar(&interactive, "interactive", false, "generate clarifying questions first")
	rootCmd.Flags().BoolVar(&rawDataOnly, "raw", false, "print raw learnings instead of a report")
	rootCmd.Flags().StringVar(&reportModel, "report-model", "", "model override for report generation")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = rootCmd.MarkFlagRequired("topic")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("deepresearch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	level := logging.LogLevelInfo
	if verbose {
		level = logging.LogLevelDebug
	}
	logger := logging.NewSlogLogger(level, "text", false)

	var p provider.Provider
	switch providerName {
	case "openai":
		p = openai.New()
	case "anthropic":
		p = anthropic.New()
	default:
		return fmt.Errorf("unknown provider %q", providerName)
	}

	wf, err := deepresearch.New(p, func(o *deepresearch.Options) {
		o.FirecrawlAPIKey = os.Getenv("FIRECRAWL_API_KEY")
		o.ExaAPIKey = os.Getenv("EXA_API_KEY")
		o.Logger = logger
	})
	if err != nil {
		return err
	}

	outcome := wf.Process(ctx, topic, func(o *research.RunOptions) {
		o.Interactive = interactive
		o.Breadth = breadth
		o.Depth = depth
		o.Concurrency = concurrency
		o.RawDataOnly = rawDataOnly
		o.ReportModel = reportModel
	})

	if rawDataOnly && outcome.Result != nil {
		fmt.Println("Learnings:")
		for _, learning := range outcome.Result.Learnings {
			fmt.Printf("- %s\n", learning)
		}
		fmt.Println("\nSources:")
		for _, url := range outcome.Result.VisitedURLs {
			fmt.Printf("- %s\n", url)
		}
		return nil
	}

	fmt.Println(outcome.Report)
	return nil
}
