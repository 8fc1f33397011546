package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"traveldeals/models"
	"traveldeals/scraper/gmaps"
	"traveldeals/services"
	"traveldeals/storage"
)

var (
	scrapeHeadless bool
	scrapeDebug    bool
	scrapeReviews  int
)

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeHeadless, "headless", true, "run the browser in headless mode")
	scrapeCmd.Flags().BoolVar(&scrapeDebug, "debug", false, "save screenshots and page snapshots for failed hotels")
	scrapeCmd.Flags().IntVar(&scrapeReviews, "max-reviews", -1, "individual reviews to collect per hotel (-1 = configured default, 0 = ratings only)")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --destination <slug> --source <slug>",
	Short: "Scrape hotel ratings and reviews from the Maps search page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSlugs(); err != nil {
			return err
		}
		p := paths()

		filteredFile, err := p.LatestFiltered()
		if err != nil {
			return err
		}
		log.Info().Str("path", filteredFile).Msg("loading filtered packages")
		raw, err := storage.LoadPackagesEnvelope(filteredFile)
		if err != nil {
			return err
		}
		hotels := services.ExtractUniqueHotels(services.ParsePackages(raw))
		log.Info().Int("hotels", len(hotels)).Msg("unique hotels to scrape")

		// Only an explicit flag overrides the HEADLESS env setting.
		if cmd.Flags().Changed("headless") {
			cfg.Headless = scrapeHeadless
		}
		maxReviews := scrapeReviews
		if maxReviews < 0 {
			maxReviews = cfg.MaxReviews
		}
		debugDir := ""
		if scrapeDebug || cfg.DebugArtifacts {
			debugDir = p.DebugDir()
		}

		scraper := gmaps.New(cfg)
		ratings := scraper.ScrapeBatch(cmd.Context(), hotels, maxReviews, debugDir)

		output := p.RatingsFile()
		if err := storage.SaveJSON(output, ratings); err != nil {
			return err
		}

		success := 0
		for _, r := range ratings {
			if r.Rating != nil {
				success++
			}
		}
		log.Info().
			Int("scraped", success).
			Int("with_reviews", ratingsWithReviews(ratings)).
			Int("total", len(hotels)).
			Str("output", output).
			Msg("scrape complete")
		return nil
	},
}

// ratingsWithReviews counts scraped records carrying at least one review.
func ratingsWithReviews(ratings []models.HotelRating) int {
	n := 0
	for _, r := range ratings {
		if len(r.Reviews) > 0 {
			n++
		}
	}
	return n
}
