package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"traveldeals/services"
	"traveldeals/storage"
)

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize --destination <slug> --source <slug>",
	Short: "Normalize merged data for downstream consumption.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSlugs(); err != nil {
			return err
		}
		p := paths()

		input := p.MergedFile()
		if err := storage.RequireFile(input); err != nil {
			return err
		}
		var merged []map[string]any
		if err := storage.LoadJSON(input, &merged); err != nil {
			return err
		}

		normalized, stats := services.NormalizeAll(merged)

		output := p.NormalizedFile()
		if err := storage.SaveJSON(output, normalized); err != nil {
			return err
		}

		log.Info().Int("hotels", len(normalized)).Str("output", output).Msg("normalization complete")
		for _, line := range stats.Summary() {
			log.Info().Msg(line)
		}
		return nil
	},
}
