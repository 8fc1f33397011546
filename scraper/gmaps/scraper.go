package gmaps

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"traveldeals/config"
	"traveldeals/models"
	"traveldeals/utils"
)

// scrapeFunc performs one hotel's extraction within an existing session.
type scrapeFunc func(ctx context.Context, hotelName string, maxReviews int) (models.HotelRating, error)

// Scraper extracts one hotel's aggregate rating, review count and individual
// reviews from the Maps search page.
type Scraper struct {
	cfg   *config.Config
	pacer *utils.Pacer
	// scrapeOne is swapped out in tests; nil means drive a real browser.
	scrapeOne scrapeFunc
}

// New creates a Scraper.
func New(cfg *config.Config) *Scraper {
	return &Scraper{
		cfg:   cfg,
		pacer: utils.NewPacer(time.Duration(cfg.ScrapeDelayMs) * time.Millisecond),
	}
}

// ScrapeBatch scrapes every hotel sequentially through one shared browser
// session. A hotel that exhausts its retry budget is recorded as a null-field
// placeholder; the batch always runs to completion.
func (s *Scraper) ScrapeBatch(parent context.Context, hotels []string, maxReviews int, debugDir string) []models.HotelRating {
	ctx := parent
	scrape := s.scrapeOne
	if scrape == nil {
		session := NewSession(parent, s.cfg.Headless)
		defer session.Close()
		ctx = session.Context()
		scrape = s.ScrapeHotel
	}

	ratings := make([]models.HotelRating, 0, len(hotels))
	for i, hotel := range hotels {
		s.pacer.Wait()
		log.Info().Str("hotel", hotel).Int("index", i+1).Int("total", len(hotels)).
			Msg("scraping hotel")

		var rating models.HotelRating
		err := utils.RetryFixed(s.cfg.RetryAttempts, s.cfg.RetryDelay, func() error {
			var scrapeErr error
			rating, scrapeErr = scrape(ctx, hotel, maxReviews)
			return scrapeErr
		})
		if err != nil {
			log.Error().Err(err).Str("hotel", hotel).Msg("hotel failed after retries, recording placeholder")
			rating = models.NewEmptyRating(hotel)
			if debugDir != "" {
				s.captureArtifacts(ctx, hotel, debugDir)
			}
		}
		ratings = append(ratings, rating)
	}
	return ratings
}

// ScrapeHotel navigates to the hotel's search page and extracts a best-effort
// rating record. Per-field misses degrade to nil; a page-load timeout yields
// a null-field record without an error. Any other failure is returned so the
// retry wrapper can re-attempt it.
func (s *Scraper) ScrapeHotel(ctx context.Context, hotelName string, maxReviews int) (models.HotelRating, error) {
	searchURL := s.cfg.MapsBaseURL + strings.ReplaceAll(hotelName, " ", "+")

	navCtx, cancel := context.WithTimeout(ctx, s.cfg.PageTimeout)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitVisible(`div[role="main"]`, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Str("hotel", hotelName).Msg("page load timed out")
			return models.NewEmptyRating(hotelName), nil
		}
		return models.NewEmptyRating(hotelName), fmt.Errorf("navigate %s: %w", searchURL, err)
	}

	// Let dynamic content settle before querying.
	_ = chromedp.Run(ctx, chromedp.Sleep(s.cfg.SettleDelay))

	rating := models.NewEmptyRating(hotelName)
	if label := s.firstLabel(ctx, RatingStrategies); label != "" {
		rating.Rating = ParseLeadingFloat(label)
	}
	if label := s.firstLabel(ctx, ReviewCountStrategies); label != "" {
		rating.ReviewCount = ParseDigits(label)
	}

	if maxReviews > 0 {
		rating.Reviews = s.scrapeReviews(ctx, hotelName, maxReviews)
	}
	return rating, nil
}

// firstLabel tries each strategy in order and returns the first non-empty
// aria-label (or text) it finds. Lookup failures are swallowed.
func (s *Scraper) firstLabel(ctx context.Context, strategies []Strategy) string {
	for _, strat := range strategies {
		var label string
		js := fmt.Sprintf(
			`(function(){var el=document.querySelector(%q);`+
				`return el ? (el.getAttribute('aria-label') || el.textContent || '') : '';})()`,
			strat.Selector)
		if err := chromedp.Run(ctx, chromedp.Evaluate(js, &label)); err != nil {
			continue
		}
		if strings.TrimSpace(label) != "" {
			log.Debug().Str("strategy", strat.Name).Str("label", label).Msg("selector matched")
			return label
		}
	}
	return ""
}

func (s *Scraper) clickFirst(ctx context.Context, selector string) bool {
	var clicked bool
	js := fmt.Sprintf(
		`(function(){var el=document.querySelector(%q); if(!el) return false; el.click(); return true;})()`,
		selector)
	if err := chromedp.Run(ctx, chromedp.Evaluate(js, &clicked)); err != nil {
		return false
	}
	return clicked
}

// captureArtifacts saves a full-page screenshot and an HTML snapshot for a
// failed hotel so the selector lists can be adjusted against real markup.
func (s *Scraper) captureArtifacts(ctx context.Context, hotelName, debugDir string) {
	if err := os.MkdirAll(debugDir, 0o755); err != nil {
		log.Warn().Err(err).Msg("cannot create debug directory")
		return
	}
	slug := strings.ReplaceAll(hotelName, " ", "_")

	var shot []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&shot, 80)); err == nil {
		path := filepath.Join(debugDir, slug+".png")
		if err := os.WriteFile(path, shot, 0o644); err == nil {
			log.Info().Str("path", path).Msg("captured screenshot")
		}
	}

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err == nil {
		path := filepath.Join(debugDir, slug+".html")
		if err := os.WriteFile(path, []byte(html), 0o644); err == nil {
			log.Info().Str("path", path).Msg("captured page snapshot")
		}
	}
}
