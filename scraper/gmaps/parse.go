package gmaps

import (
	"regexp"
	"strconv"
	"strings"

	"traveldeals/models"
)

var (
	leadingFloatRe   = regexp.MustCompile(`^([0-9]+(?:[.,][0-9]+)?)`)
	inlineRatingRe   = regexp.MustCompile(`([1-5])\s*/\s*5`)
	platformSuffixRe = regexp.MustCompile(`(?i)\s+on\s+\S+$`)
)

// minReviewTextLen filters out extraction misses; a real review shorter than
// this does not occur on the target page.
const minReviewTextLen = 5

// defaultReviewRating is used when a per-review star value cannot be parsed.
const defaultReviewRating = 3

// ParseLeadingFloat extracts the numeric token that starts s, e.g. "4.5" from
// "4.5 stars" or "4,5 estrellas". Returns nil when s does not start with a
// number.
func ParseLeadingFloat(s string) *float64 {
	m := leadingFloatRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDigits collects every digit character of s into one integer, which
// strips thousands separators of any locale ("21,450 reviews" -> 21450,
// "12 450 avis" -> 12450). Returns nil when s has no digits.
func ParseDigits(s string) *int {
	var b strings.Builder
	for _, ch := range s {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return nil
	}
	return &n
}

// ParseReviewRating resolves one review's star value from its aria-label
// ("5 stars") or an inline "X/5" fragment, defaulting to 3 when neither
// parses into the 1..5 range.
func ParseReviewRating(ariaLabel, inline string) int {
	if v := ParseLeadingFloat(ariaLabel); v != nil {
		n := int(*v + 0.5)
		if n >= 1 && n <= 5 {
			return n
		}
	}
	if m := inlineRatingRe.FindStringSubmatch(inline); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return defaultReviewRating
}

// StripPlatformSuffix removes a trailing "on <platform>" attribution from a
// review date ("2 weeks ago on Google" -> "2 weeks ago").
func StripPlatformSuffix(date string) string {
	return strings.TrimSpace(platformSuffixRe.ReplaceAllString(strings.TrimSpace(date), ""))
}

// DedupReviews removes duplicate reviews by their (text, rating, reviewer)
// identity, preserving first-seen order. The page re-renders nodes during
// incremental scroll-loading, so duplicates are expected rather than detected
// during extraction.
func DedupReviews(reviews []models.Review) []models.Review {
	seen := make(map[string]struct{}, len(reviews))
	out := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// ScrollBudget is the number of lazy-load scroll passes for a requested
// review count.
func ScrollBudget(maxReviews int) int {
	n := maxReviews/4 + 8
	if n < 12 {
		n = 12
	}
	return n
}

// MinLoadTarget is how many review nodes should be present before sampling;
// past this the extra-scroll phase stops.
func MinLoadTarget(requested int) int {
	n := 3 * requested
	if m := requested + 15; m > n {
		n = m
	}
	return n
}

// OversampleLimit is how many review nodes to consider for extraction,
// compensating for scroll-induced duplicates.
func OversampleLimit(requested int) int {
	n := 2 * requested
	if m := requested + 10; m > n {
		n = m
	}
	return n
}
