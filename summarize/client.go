package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"traveldeals/models"
)

// ErrSafetyBlocked is returned when the text model refuses a request under
// its content-safety policy. It halts the remaining summarization run, unlike
// ordinary parse or network failures which are retried per hotel.
var ErrSafetyBlocked = errors.New("request blocked by content-safety policy")

// noReviewsSummary is the fixed summary for hotels without extractable reviews.
const noReviewsSummary = "No reviews available for analysis."

// GeminiClient talks to the Gemini generateContent endpoint.
type GeminiClient struct {
	http   *resty.Client
	base   string
	model  string
	apiKey string
	prompt PromptTemplate
}

// NewGeminiClient builds a client. The API key is required.
func NewGeminiClient(baseURL, model, apiKey string, prompt PromptTemplate) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key not found: pass --api-key or set GEMINI_API_KEY")
	}
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	client.SetHeader("Content-Type", "application/json")
	return &GeminiClient{
		http:   client,
		base:   strings.TrimRight(baseURL, "/"),
		model:  model,
		apiKey: apiKey,
		prompt: prompt,
	}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	TopK             int     `json:"topK"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiCandidate struct {
	Content      geminiContent   `json:"content"`
	FinishReason json.RawMessage `json:"finishReason"`
}

type geminiResponse struct {
	Candidates     []geminiCandidate `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Summarize sends the hotel's review texts to the model and parses the
// constrained JSON reply into a ReviewSummary.
func (c *GeminiClient) Summarize(ctx context.Context, hotelName string, reviewTexts []string) (models.ReviewSummary, error) {
	if len(reviewTexts) == 0 {
		return models.ReviewSummary{
			GoodPoints:     []string{},
			BadPoints:      []string{},
			UglyPoints:     []string{},
			OverallSummary: noReviewsSummary,
		}, nil
	}

	reviewsJSON, err := json.Marshal(reviewTexts)
	if err != nil {
		return models.ReviewSummary{}, err
	}

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: c.prompt.FormatReviewSummarization(hotelName, string(reviewsJSON))}},
		}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      0.3,
			TopP:             0.95,
			TopK:             40,
			MaxOutputTokens:  4096,
			ResponseMimeType: "application/json",
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base, c.model, c.apiKey)

	var reply geminiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&reply).
		Post(url)
	if err != nil {
		return models.ReviewSummary{}, fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		return models.ReviewSummary{}, fmt.Errorf("gemini api error %d: %s", resp.StatusCode(), resp.String())
	}

	if reply.PromptFeedback.BlockReason != "" {
		return models.ReviewSummary{}, fmt.Errorf("%w: %s", ErrSafetyBlocked, reply.PromptFeedback.BlockReason)
	}
	if len(reply.Candidates) == 0 {
		// No candidates at all is the other shape a safety block takes.
		return models.ReviewSummary{}, ErrSafetyBlocked
	}
	if isSafetyFinish(reply.Candidates[0].FinishReason) {
		return models.ReviewSummary{}, ErrSafetyBlocked
	}
	if len(reply.Candidates[0].Content.Parts) == 0 {
		return models.ReviewSummary{}, errors.New("empty gemini response")
	}

	return ParseSummaryReply(reply.Candidates[0].Content.Parts[0].Text, len(reviewTexts))
}

// isSafetyFinish recognizes both encodings of the safety finish reason: the
// REST enum name and the numeric protobuf value.
func isSafetyFinish(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name == "SAFETY"
	}
	var code int
	if err := json.Unmarshal(raw, &code); err == nil {
		return code == 2
	}
	return false
}

// StripCodeFence removes a wrapping markdown code fence (with an optional
// "json" language tag) from the model reply.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	out := strings.TrimSpace(strings.Join(lines, "\n"))
	out = strings.TrimPrefix(out, "json")
	return strings.TrimSpace(out)
}

// ParseSummaryReply decodes the model's JSON reply. reviewCount fills in
// review_count_analyzed when the model omits it. Point lists are clamped to
// five entries.
func ParseSummaryReply(reply string, reviewCount int) (models.ReviewSummary, error) {
	text := StripCodeFence(reply)

	var decoded struct {
		GoodPoints          []string `json:"good_points"`
		BadPoints           []string `json:"bad_points"`
		UglyPoints          []string `json:"ugly_points"`
		OverallSummary      string   `json:"overall_summary"`
		ReviewCountAnalyzed *int     `json:"review_count_analyzed"`
	}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return models.ReviewSummary{}, fmt.Errorf("parse summary reply: %w", err)
	}
	if strings.TrimSpace(decoded.OverallSummary) == "" {
		return models.ReviewSummary{}, errors.New("summary reply is missing overall_summary")
	}

	summary := models.ReviewSummary{
		GoodPoints:          capPoints(decoded.GoodPoints),
		BadPoints:           capPoints(decoded.BadPoints),
		UglyPoints:          capPoints(decoded.UglyPoints),
		OverallSummary:      decoded.OverallSummary,
		ReviewCountAnalyzed: reviewCount,
	}
	if decoded.ReviewCountAnalyzed != nil && *decoded.ReviewCountAnalyzed >= 0 {
		summary.ReviewCountAnalyzed = *decoded.ReviewCountAnalyzed
	}
	return summary, nil
}

func capPoints(points []string) []string {
	if points == nil {
		return []string{}
	}
	if len(points) > 5 {
		return points[:5]
	}
	return points
}
