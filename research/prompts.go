package research

import (
	"fmt"
	"strings"

	"github.com/hupe1980/deepresearch/internal/util"
)

// researchSystemPrompt frames the model as a search result analyst for query
// generation, result processing and clarifying questions.
const researchSystemPrompt = `You are an expert research analyst that processes web search results.
Analyze the content and provide insights for each section you identify:
1. Key findings and main themes
2. Source credibility and diversity
3. Information completeness and gaps
4. Emerging patterns and trends
5. Potential biases or conflicting information

Be thorough and detailed in your analysis. Focus on extracting concrete facts,
statistics, and verifiable information. Highlight any uncertainties or areas
needing further research.

Return your analysis in a clear, structured format with sections for key findings,
detailed analysis, and recommendations for further research.

IMPORTANT: DON'T MAKE ANY INFORMATION UP, IT MUST BE FROM THE CONTENT PROVIDED.
FOLLOW THE REQUESTED JSON FORMAT EXACTLY WITH NO ADDITIONAL MARKUP OR COMMENTS.`

// reportSystemPrompt frames the model as a report writer for the final
// synthesis call.
const reportSystemPrompt = `You are an expert researcher specializing in producing exhaustive, analytically rigorous research reports.
Follow these instructions when responding:
- Assume all provided facts, especially those after your knowledge cutoff, are accurate unless contradicted internally.
- The user is a highly experienced analyst. Do not simplify. Prioritize technical precision, domain-specific terminology, and comprehensive argumentation.
- Organize the report with multiple clearly defined sections and be verbose, detailed, and data-driven where possible.
- Anticipate what the user might need to know next and suggest strategies the user may not have considered.
- Include emerging technologies, trends, and contrarian ideas, and clearly identify areas of high uncertainty or risk.
- You may speculate about future developments, but you must clearly mark any speculative or high-uncertainty claims.
- Provide critical evaluation of ideas, trade-offs, and second-order consequences.

IMPORTANT: MAKE SURE YOU RETURN THE JSON ONLY, NO OTHER TEXT OR MARKUP AND A VALID JSON.
DONT ADD ANY COMMENTS OR MARKUP TO THE JSON. Example NO # or /* */ or // or any other comments or markup.
MAKE SURE YOU RETURN THE JSON ONLY, JSON SHOULD BE PERFECTLY FORMATTED. ALL KEYS SHOULD BE OPENED AND CLOSED.`

func buildQuestionsPrompt(topic string) string {
	return fmt.Sprintf(`Given this research topic: %s, generate 3-5 follow-up questions to better understand the research needs.
Return ONLY a JSON array of strings containing the questions.`, topic)
}

func buildQueryGenPrompt(topic string, numQueries int, learnings []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Given the following prompt from the user, generate a list of SERP queries to research the topic.
Return a JSON object with a 'queries' array field containing %d queries (or less if the original prompt is clear).
Each query object should have 'query' and 'research_goal' fields.
Make sure each query is unique and not similar to each other:

<prompt>%s</prompt>
`, numQueries, topic)

	if len(learnings) > 0 {
		fmt.Fprintf(&b, "\nPrevious learnings to consider:\n%s\n", util.BulletList(learnings))
	}

	b.WriteString(`
IMPORTANT: MAKE SURE YOU FOLLOW THE EXAMPLE RESPONSE FORMAT AND ONLY THAT FORMAT WITH THE CORRECT QUERY AND RESEARCH GOAL.
{
    "queries": [
        {
            "query": "QUERY 1",
            "research_goal": "RESEARCH GOAL 1"
        },
        {
            "query": "QUERY 2",
            "research_goal": "RESEARCH GOAL 2"
        }
    ]
}`)

	return b.String()
}

func buildProcessPrompt(query string, contents []string) string {
	var tagged strings.Builder
	for _, content := range contents {
		fmt.Fprintf(&tagged, "<content>\n%s\n</content>", content)
	}

	return fmt.Sprintf(`Analyze these search results for the query: <query>%s</query>

<contents>%s</contents>

Provide a detailed analysis including key findings, main themes, and recommendations for further research.
Return as JSON with 'analysis', 'learnings', and 'follow_up_questions' fields.

IMPORTANT: MAKE SURE YOU RETURN THE JSON ONLY, NO OTHER TEXT OR MARKUP AND A VALID JSON.
DONT ADD ANY COMMENTS OR MARKUP TO THE JSON. Example NO # or /* */ or // or any other comments or markup.
USE THE FOLLOWING FORMAT FOR THE JSON:
{
    "analysis": "Analysis of the search results",
    "learnings": ["Learning 1", "Learning 2", "Learning 3", "Learning 4", "Learning 5"],
    "follow_up_questions": ["Question 1", "Question 2", "Question 3"]
}

The learnings should be unique, concise, and information-dense, including entities, metrics, numbers, and dates.
IMPORTANT: DON'T MAKE ANY INFORMATION UP, IT MUST BE FROM THE CONTENT. ONLY USE THE CONTENT TO GENERATE THE LEARNINGS AND FOLLOW UP QUESTIONS.`, query, tagged.String())
}

func buildReportPrompt(originalQuery, learnings, analyses string) string {
	return fmt.Sprintf(`Given the following prompt from the user, write a final report on the topic using
the learnings from research. Return a JSON object with a 'reportMarkdown' field
containing a detailed markdown report (aim for 3+ pages). Include ALL the learnings
from research:
<prompt>
%s
</prompt>

Here are all the learnings from research:
<learnings>
%s
</learnings>

Here are all the analyses from research:
<analyses>
%s
</analyses>

Create a dynamic amount of sections and subsections based on the content provided. Make sure to cover all the content and provide a comprehensive analysis.
At a minimum, include the following sections:
- Key findings and main themes
- Source credibility and diversity
- Information completeness and gaps
- Emerging patterns and trends
- Potential biases or conflicting information
Aside from the final conclusion, include at least 5 sections of subtopics and a sub conclusion per section.
IMPORTANT: Aim for at least 3+ pages of content. Be verbose and detailed in your analysis. Don't over summarize, don't over simplify.

IMPORTANT: MAKE SURE YOU RETURN THE JSON ONLY, NO OTHER TEXT OR MARKUP AND A VALID JSON.
DONT ADD ANY COMMENTS OR MARKUP TO THE JSON. Example NO # or /* */ or // or any other comments or markup.
MAKE SURE YOU RETURN THE JSON ONLY, JSON SHOULD BE PERFECTLY FORMATTED. ALL KEYS SHOULD BE OPENED AND CLOSED.`, originalQuery, learnings, analyses)
}
