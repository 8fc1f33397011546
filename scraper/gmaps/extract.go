package gmaps

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"traveldeals/models"
)

// ExtractReviews parses the rendered reviews panel and returns up to
// requested deduplicated reviews in first-seen order. Extraction is
// per-field best-effort: a node that yields no usable text is dropped, a
// node with text but an unparseable rating keeps the default.
func ExtractReviews(panelHTML string, requested int) []models.Review {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(panelHTML))
	if err != nil {
		return []models.Review{}
	}

	limit := OversampleLimit(requested)
	var out []models.Review

	doc.Find(ReviewNodeSelector).EachWithBreak(func(i int, node *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		if r, ok := extractReviewNode(node); ok {
			out = append(out, r)
		}
		return true
	})

	out = DedupReviews(out)
	if len(out) > requested {
		out = out[:requested]
	}
	if out == nil {
		out = []models.Review{}
	}
	return out
}

func extractReviewNode(node *goquery.Selection) (models.Review, bool) {
	text := firstText(node, reviewTextSelectors)
	if len(strings.TrimSpace(text)) < minReviewTextLen {
		// An empty or tiny body signals an extraction miss, not a short review.
		return models.Review{}, false
	}

	aria, _ := node.Find(reviewStarSelector).First().Attr("aria-label")
	rating := ParseReviewRating(aria, node.Text())

	date := StripPlatformSuffix(firstText(node, reviewDateSelectors))

	review := models.Review{
		Text:   strings.TrimSpace(text),
		Rating: rating,
		Date:   date,
	}
	if name := strings.TrimSpace(firstText(node, reviewerNameSelectors)); name != "" {
		review.ReviewerName = &name
	}
	return review, true
}

func firstText(node *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if t := strings.TrimSpace(node.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}
