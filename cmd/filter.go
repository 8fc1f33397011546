package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"traveldeals/services"
	"traveldeals/storage"
)

var filterBudget float64

func init() {
	filterCmd.Flags().Float64Var(&filterBudget, "budget", 0, "maximum total price in CAD (required)")
	filterCmd.MarkFlagRequired("budget")
	rootCmd.AddCommand(filterCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter --destination <slug> --source <slug> --budget <cad>",
	Short: "Filter raw vacation packages by maximum budget.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSlugs(); err != nil {
			return err
		}
		p := paths()
		input := p.RawPackages()
		if err := storage.RequireFile(input); err != nil {
			log.Error().Str("path", input).Msg("raw packages missing, add packages.json to the raw directory first")
			return err
		}

		log.Info().Str("path", input).Msg("loading packages")
		raw, err := storage.LoadPackagesEnvelope(input)
		if err != nil {
			return err
		}

		log.Info().Float64("budget", filterBudget).Msg("filtering packages")
		filtered := services.FilterByBudget(raw, filterBudget)

		output := p.FilteredFile(filterBudget)
		if err := storage.SaveJSON(output, filtered); err != nil {
			return err
		}

		log.Info().
			Int("input", len(raw)).
			Int("kept", len(filtered)).
			Str("output", output).
			Msg("filter complete")
		return nil
	},
}
