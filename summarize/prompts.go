package summarize

import "fmt"

// PromptTemplate formats the review-summarization prompt for one provider.
// Templates are data, not control flow, so switching providers never touches
// the summarization logic.
type PromptTemplate interface {
	FormatReviewSummarization(hotelName, reviewsJSON string) string
}

// GeminiPrompts is the template tuned for the Gemini API.
type GeminiPrompts struct{}

func (GeminiPrompts) FormatReviewSummarization(hotelName, reviewsJSON string) string {
	return fmt.Sprintf(`Analyze the following hotel reviews and produce the JSON output below. Ignore duplicates, emojis, and filler phrases. Focus only on meaningful content.

Return ONLY this JSON:
{
  "good_points": [],
  "bad_points": [],
  "ugly_points": [],
  "overall_summary": "",
  "review_count_analyzed": 0
}

Rules:
- Summarize only recurring themes across reviews
- Max 5 items per list
- Each item 8-20 words, concise and factual
- good_points = commonly praised aspects
- bad_points = moderate or occasional issues
- ugly_points = serious or repeated deal-breakers
- overall_summary = 2-3 sentences (40-70 words)
- No markdown, no explanations, no extra text
- Compress long reviews internally before extracting themes
- If a theme appears only once, ignore it

Reviews for %q:
%s`, hotelName, reviewsJSON)
}

// ClaudePrompts is the template tuned for the Anthropic API.
type ClaudePrompts struct{}

func (ClaudePrompts) FormatReviewSummarization(hotelName, reviewsJSON string) string {
	return fmt.Sprintf(`You are analyzing hotel reviews for %q.

Here are the reviews to analyze:

<reviews>
%s
</reviews>

Please analyze these reviews and provide a structured summary in JSON format with:

1. good_points: Array of positive aspects (recurring themes that guests enjoyed)
2. bad_points: Array of negative aspects (issues that were problematic but not critical)
3. ugly_points: Array of serious issues (deal-breakers like health/safety concerns)
4. overall_summary: A balanced 2-3 sentence summary of the guest experience
5. review_count_analyzed: Number of reviews you analyzed

Focus on:
- Recurring themes mentioned by multiple guests
- Being balanced and honest about both strengths and weaknesses
- Identifying truly serious issues vs. minor complaints
- Keeping each point concise and actionable

Return your response as valid JSON only, no other text.`, hotelName, reviewsJSON)
}

// GetPromptTemplate resolves a provider name to its template.
func GetPromptTemplate(provider string) (PromptTemplate, error) {
	switch provider {
	case "gemini":
		return GeminiPrompts{}, nil
	case "claude":
		return ClaudePrompts{}, nil
	default:
		return nil, fmt.Errorf("unsupported prompt provider %q (available: gemini, claude)", provider)
	}
}
