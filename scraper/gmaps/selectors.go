package gmaps

// The Maps page structure is unversioned and drifts without notice. Every
// lookup below is an ordered list of independent strategies tried until one
// matches, so markup drift only requires list edits, not control-flow changes.

// Strategy is one way of locating a page element.
type Strategy struct {
	Name     string
	Selector string
}

// RatingStrategies locate the aggregate star-rating indicator.
var RatingStrategies = []Strategy{
	{"aria stars", `span[role="img"][aria-label*="star"]`},
	{"aria stars localized", `span[role="img"][aria-label*="estrella"]`},
	{"inline score", `div[role="main"] span[aria-hidden="true"]`},
}

// ReviewCountStrategies locate the review-count indicator. Localized label
// variants are listed explicitly (English, Spanish, French).
var ReviewCountStrategies = []Strategy{
	{"aria reviews", `div[role="main"] span[role="img"][aria-label*="review"]`},
	{"aria reviews es", `div[role="main"] span[role="img"][aria-label*="reseñ"]`},
	{"aria reviews fr", `div[role="main"] span[role="img"][aria-label*="avis"]`},
}

// ReviewsTabStrategies open the reviews panel for the selected place.
var ReviewsTabStrategies = []Strategy{
	{"reviews tab", `button[role="tab"][aria-label*="Reviews"]`},
	{"more reviews action", `button[jsaction*="moreReviews"]`},
	{"review count link", `button[jsaction*="reviewChart"]`},
	{"second tab", `div[role="tablist"] button:nth-of-type(2)`},
}

// FirstResultSelector picks the first non-advertisement search result when the
// search landed on a result list instead of a place page. Sponsored entries
// carry their own aria-label.
const FirstResultSelector = `a[href*="/maps/place/"]:not([aria-label*="Sponsored"])`

// FeedSelector is the scrollable reviews container; when it is missing the
// whole page is scrolled instead.
const FeedSelector = `div[role="feed"]`

// ReviewNodeSelector matches one rendered review card.
const ReviewNodeSelector = `div[data-review-id]`

// reviewTextSelectors, tried in order inside one review node.
var reviewTextSelectors = []string{"span.wiI7pd", "div.MyEned span"}

// reviewDateSelectors, tried in order inside one review node.
var reviewDateSelectors = []string{"span.rsqaWe", "span.DZSIDd", "span.xRkPPb"}

// reviewerNameSelectors, tried in order inside one review node.
var reviewerNameSelectors = []string{"div.d4r55", "button[jsaction*='review.reviewerLink'] div"}

// reviewStarSelector carries the per-review rating in its aria-label.
const reviewStarSelector = `span[role="img"][aria-label*="star"]`

// expandReviewSelectors match the "show more" controls that truncate long
// review bodies.
var expandReviewSelectors = []string{
	`button[jsaction*="review.expandReview"]`,
	`button[aria-label="See more"]`,
}
