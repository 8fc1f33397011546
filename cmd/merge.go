package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"traveldeals/models"
	"traveldeals/services"
	"traveldeals/storage"
)

var mergeHotel string

func init() {
	mergeCmd.Flags().StringVar(&mergeHotel, "hotel", "", "only merge the hotel with this exact name (case-insensitive)")
	rootCmd.AddCommand(mergeCmd)
}

var mergeCmd = &cobra.Command{
	Use:   "merge --destination <slug> --source <slug>",
	Short: "Merge filtered packages with scraped ratings into per-hotel records.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSlugs(); err != nil {
			return err
		}
		p := paths()

		filteredFile, err := p.LatestFiltered()
		if err != nil {
			return err
		}
		log.Info().Str("path", filteredFile).Msg("loading packages")
		raw, err := storage.LoadPackagesEnvelope(filteredFile)
		if err != nil {
			return err
		}
		packages := services.ParsePackages(raw)
		if mergeHotel != "" {
			key := services.CanonicalHotelKey(mergeHotel)
			kept := packages[:0]
			for _, pkg := range packages {
				if services.CanonicalHotelKey(pkg.HotelName) == key {
					kept = append(kept, pkg)
				}
			}
			packages = kept
			log.Info().Str("hotel", mergeHotel).Msg("restricting merge to one hotel")
		}

		// Summarized ratings are preferred; a plain scrape still merges.
		ratingsFile := p.SummarizedFile()
		if _, err := os.Stat(ratingsFile); err != nil {
			ratingsFile = p.RatingsFile()
		}
		if err := storage.RequireFile(ratingsFile); err != nil {
			return err
		}
		log.Info().Str("path", ratingsFile).Msg("loading ratings")
		var ratings []models.HotelRating
		if err := storage.LoadJSON(ratingsFile, &ratings); err != nil {
			return err
		}

		merged := services.MergeData(packages, ratings, source)

		output := p.MergedFile()
		if err := storage.SaveJSON(output, merged); err != nil {
			return err
		}

		if cfg.DatabaseURL != "" {
			if err := upsertMerged(merged); err != nil {
				log.Error().Err(err).Msg("database upsert failed, file output is still valid")
			}
		}

		services.PrintMergeReport(services.BuildMergeReport(merged))
		log.Info().Int("hotels", len(merged)).Str("output", output).Msg("merge complete")
		return nil
	},
}

func upsertMerged(merged []models.HotelData) error {
	writer, err := storage.NewPostgresWriter(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.CreateTable(); err != nil {
		return err
	}
	return writer.BatchUpsert(merged)
}
