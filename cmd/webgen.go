package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"traveldeals/services"
	"traveldeals/storage"
)

func init() {
	rootCmd.AddCommand(webgenCmd)
}

const defaultBudget = 5000

var webgenCmd = &cobra.Command{
	Use:   "webgen --destination <slug> --source <slug>",
	Short: "Generate the hotels.json payload consumed by the web viewer.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSlugs(); err != nil {
			return err
		}
		p := paths()

		// Normalized output is preferred when the normalize stage has run.
		input := p.NormalizedFile()
		if _, err := os.Stat(input); err != nil {
			input = p.MergedFile()
		}
		if err := storage.RequireFile(input); err != nil {
			return err
		}
		log.Info().Str("path", input).Msg("loading merged data")
		var merged []json.RawMessage
		if err := storage.LoadJSON(input, &merged); err != nil {
			return err
		}

		budget := p.LatestBudget(defaultBudget)

		web := services.TransformToWeb(merged, destination, source, budget, time.Now().UTC())

		output := p.WebOutput()
		if err := storage.SaveJSON(output, web); err != nil {
			return err
		}

		log.Info().
			Int("hotels", len(web.Hotels)).
			Int("budget", budget).
			Str("output", output).
			Msg("web payload generated")
		return nil
	},
}
