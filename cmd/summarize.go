package cmd

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"traveldeals/models"
	"traveldeals/services"
	"traveldeals/storage"
	"traveldeals/summarize"
)

var (
	summarizeModel      string
	summarizeHotel      string
	summarizeForce      bool
	summarizeTestSingle bool
	summarizeMaxReviews int
	summarizeMaxNew     int
)

func init() {
	summarizeCmd.Flags().StringVar(&summarizeModel, "model", "", "text model to use (default from GEMINI_MODEL)")
	summarizeCmd.Flags().StringVar(&summarizeHotel, "hotel", "", "only summarize the hotel with this exact name (case-insensitive)")
	summarizeCmd.Flags().BoolVar(&summarizeForce, "force", false, "regenerate even if a summary already exists")
	summarizeCmd.Flags().BoolVar(&summarizeTestSingle, "test-single-hotel", false, "only process the first hotel")
	summarizeCmd.Flags().IntVar(&summarizeMaxReviews, "max-reviews-per-hotel", 0, "cap reviews sent per hotel to reduce token usage (0 = all)")
	summarizeCmd.Flags().IntVar(&summarizeMaxNew, "max-new-summaries", 0, "stop after generating this many new summaries (0 = unlimited)")
	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize --destination <slug> --source <slug>",
	Short: "Generate AI summaries of scraped hotel reviews.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSlugs(); err != nil {
			return err
		}
		p := paths()

		input := p.RatingsFile()
		if err := storage.RequireFile(input); err != nil {
			return err
		}
		var ratings []models.HotelRating
		if err := storage.LoadJSON(input, &ratings); err != nil {
			return err
		}

		model := cfg.GeminiModel
		if summarizeModel != "" {
			model = summarizeModel
		}
		prompt, err := summarize.GetPromptTemplate(cfg.PromptProvider)
		if err != nil {
			return err
		}
		client, err := summarize.NewGeminiClient(cfg.GeminiBaseURL, model, cfg.GeminiAPIKey, prompt)
		if err != nil {
			return err
		}

		var cache summarize.Cache
		if cfg.RedisAddr != "" {
			redisCache := storage.NewRedisCache(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTLSec)
			defer redisCache.Close()
			cache = redisCache
		}

		output := p.SummarizedFile()
		existing := loadExistingSummaries(output)
		if !summarizeForce && len(existing) > 0 {
			log.Info().Int("cached", len(existing)).Msg("skipping hotels with existing summaries")
		}

		svc := summarize.NewService(client, cache, cfg.SummaryRateLimit, existing, func(processed []models.HotelRating) error {
			return storage.SaveJSON(output, processed)
		})

		log.Info().
			Str("input", input).
			Str("output", output).
			Str("model", model).
			Float64("rate_limit", cfg.SummaryRateLimit).
			Msg("summarization starting")

		summarized, err := svc.Run(cmd.Context(), ratings, summarize.Options{
			Force:              summarizeForce,
			HotelFilter:        summarizeHotel,
			MaxNew:             summarizeMaxNew,
			MaxReviewsPerHotel: summarizeMaxReviews,
			TestSingle:         summarizeTestSingle,
		})
		if errors.Is(err, summarize.ErrSafetyBlocked) {
			log.Error().Int("processed", len(summarized)).
				Msg("run halted by content-safety block, partial results saved")
			return err
		}
		if err != nil {
			return err
		}

		log.Info().Int("processed", len(summarized)).Str("output", output).Msg("summarization complete")
		return nil
	},
}

// loadExistingSummaries recovers summaries from a previous run's output file,
// keyed by canonical hotel name. A missing or unreadable file means none.
func loadExistingSummaries(path string) map[string]*models.ReviewSummary {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	var previous []models.HotelRating
	if err := storage.LoadJSON(path, &previous); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("previous output unreadable, regenerating all")
		return nil
	}
	existing := make(map[string]*models.ReviewSummary)
	for _, r := range previous {
		if r.ReviewSummary != nil {
			existing[services.CanonicalHotelKey(r.HotelName)] = r.ReviewSummary
		}
	}
	return existing
}
