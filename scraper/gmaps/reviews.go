package gmaps

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"traveldeals/models"
)

// scrollSettle is the pause after each lazy-load scroll pass.
const scrollSettle = 400 * time.Millisecond

// extraScrollPasses bounds the second scroll phase when the first budget
// did not load enough review nodes.
const extraScrollPasses = 20

// scrapeReviews opens the reviews panel and harvests up to maxReviews
// deduplicated reviews. Failure to open the panel is an expected degradation
// path and returns an empty list, never an error.
func (s *Scraper) scrapeReviews(ctx context.Context, hotelName string, maxReviews int) []models.Review {
	if !s.openReviewsPanel(ctx) {
		log.Warn().Str("hotel", hotelName).Msg("reviews panel not reachable, skipping reviews")
		return []models.Review{}
	}
	_ = chromedp.Run(ctx, chromedp.Sleep(s.cfg.SettleDelay))

	loaded := s.scrollForReviews(ctx, maxReviews)
	log.Debug().Str("hotel", hotelName).Int("nodes", loaded).Msg("review nodes loaded")

	s.expandTruncatedReviews(ctx)

	html := s.panelHTML(ctx)
	if html == "" {
		return []models.Review{}
	}

	reviews := ExtractReviews(html, maxReviews)
	log.Info().Str("hotel", hotelName).Int("reviews", len(reviews)).Msg("reviews extracted")
	return reviews
}

// openReviewsPanel tries the tab strategies in order; when none match it
// opens the first non-advertisement search result and tries again.
func (s *Scraper) openReviewsPanel(ctx context.Context) bool {
	if s.tryReviewTabs(ctx) {
		return true
	}
	// The search may have landed on a result list instead of a place page.
	if !s.clickFirst(ctx, FirstResultSelector) {
		return false
	}
	_ = chromedp.Run(ctx, chromedp.Sleep(s.cfg.SettleDelay))
	return s.tryReviewTabs(ctx)
}

func (s *Scraper) tryReviewTabs(ctx context.Context) bool {
	for _, strat := range ReviewsTabStrategies {
		if s.clickFirst(ctx, strat.Selector) {
			log.Debug().Str("strategy", strat.Name).Msg("reviews entry point clicked")
			return true
		}
	}
	return false
}

// scrollForReviews drives the lazy-load pagination: a budget proportional to
// the requested count, then a bounded extra phase until the minimum node
// target is met. Returns the number of review nodes present at the end.
func (s *Scraper) scrollForReviews(ctx context.Context, maxReviews int) int {
	budget := ScrollBudget(maxReviews)
	for i := 0; i < budget; i++ {
		s.scrollOnce(ctx)
	}

	target := MinLoadTarget(maxReviews)
	loaded := s.countReviewNodes(ctx)
	for i := 0; i < extraScrollPasses && loaded < target; i++ {
		s.scrollOnce(ctx)
		loaded = s.countReviewNodes(ctx)
	}
	return loaded
}

// scrollOnce scrolls the reviews feed container, falling back to the whole
// page when the container is missing.
func (s *Scraper) scrollOnce(ctx context.Context) {
	js := fmt.Sprintf(
		`(function(){var f=document.querySelector(%q);`+
			`if(f){f.scrollTop=f.scrollHeight; return true;}`+
			`window.scrollBy(0, 2000); return false;})()`,
		FeedSelector)
	var usedFeed bool
	_ = chromedp.Run(ctx, chromedp.Evaluate(js, &usedFeed))
	_ = chromedp.Run(ctx, chromedp.Sleep(scrollSettle))
}

func (s *Scraper) countReviewNodes(ctx context.Context) int {
	var n int
	js := fmt.Sprintf(`document.querySelectorAll(%q).length`, ReviewNodeSelector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &n)); err != nil {
		return 0
	}
	return n
}

// expandTruncatedReviews clicks every visible "show more" control so full
// review bodies are present in the captured HTML.
func (s *Scraper) expandTruncatedReviews(ctx context.Context) {
	for _, sel := range expandReviewSelectors {
		js := fmt.Sprintf(
			`(function(){var n=0; document.querySelectorAll(%q).forEach(function(b){b.click(); n++;}); return n;})()`,
			sel)
		var clicked int
		if err := chromedp.Run(ctx, chromedp.Evaluate(js, &clicked)); err != nil {
			continue
		}
		if clicked > 0 {
			_ = chromedp.Run(ctx, chromedp.Sleep(scrollSettle))
		}
	}
}

// panelHTML captures the reviews container markup, or the whole body when
// the container is missing.
func (s *Scraper) panelHTML(ctx context.Context) string {
	var html string
	js := fmt.Sprintf(
		`(function(){var f=document.querySelector(%q);`+
			`return f ? f.outerHTML : (document.body ? document.body.outerHTML : '');})()`,
		FeedSelector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &html)); err != nil {
		return ""
	}
	return html
}
