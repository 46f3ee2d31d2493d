package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/deepresearch/internal/util"
	"github.com/hupe1980/deepresearch/logging"
	"github.com/hupe1980/deepresearch/provider"
)

// reportGenerator synthesizes the accumulated learnings and analyses into a
// long-form Markdown report with an appended sources section.
type reportGenerator struct {
	provider provider.Provider
	logger   logging.Logger
}

type reportResponse struct {
	ReportMarkdown string `json:"reportMarkdown"`
}

// generate issues the final synthesis call. It always returns a report: when
// the model response cannot be parsed it degrades to a minimal report built
// from the query, the learnings and the raw response text.
func (g *reportGenerator) generate(ctx context.Context, originalQuery string, res Result, model string) string {
	learnings := util.BulletList(res.Learnings)

	// Analyses go into the prompt as a JSON array of {query, analysis}.
	flat := make([]map[string]string, 0, len(res.Analyses))
	for _, a := range res.Analyses {
		flat = append(flat, map[string]string{"query": a.Query, "analysis": a.Analysis})
	}
	analysesJSON, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		analysesJSON = []byte("[]")
	}

	resp, err := g.provider.Call(ctx, provider.Request{
		SystemPrompt: reportSystemPrompt,
		UserPrompt:   buildReportPrompt(originalQuery, learnings, string(analysesJSON)),
		Temperature:  0.3,
		Model:        model,
	})
	if err != nil {
		g.logger.Error("report generation call failed", "error", err)
		return g.fallbackReport(originalQuery, res, "")
	}

	var parsed reportResponse
	if err := decodeResponse(resp.Text, &parsed); err != nil {
		g.logger.Error("failed to parse report JSON", "error", err)
		g.logger.Debug("raw report response", "response", resp.Text)
		return g.fallbackReport(originalQuery, res, resp.Text)
	}

	report := parsed.ReportMarkdown
	if report == "" {
		report = "Error generating report"
	}

	return report + sourcesSection(res.VisitedURLs)
}

// fallbackReport builds the degraded report when the model output is
// unusable. The original query, every learning and every source URL are
// always present so the pipeline never produces an empty answer.
func (g *reportGenerator) fallbackReport(originalQuery string, res Result, rawResponse string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Research Report: %s\n\n", originalQuery)
	b.WriteString("## Key Findings\n\n")
	b.WriteString(util.BulletList(res.Learnings))
	b.WriteString(sourcesSection(res.VisitedURLs))
	if rawResponse != "" {
		b.WriteString("\n\n## Response\n\n")
		b.WriteString(rawResponse)
	}
	return b.String()
}

func sourcesSection(urls []string) string {
	return "\n\n## Sources\n\n" + util.BulletList(urls)
}
