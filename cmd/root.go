package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"traveldeals/config"
	"traveldeals/storage"
	"traveldeals/utils"
)

var (
	cfg         *config.Config
	destination string
	source      string
)

var rootCmd = &cobra.Command{
	Use:   "traveldeals",
	Short: "traveldeals filters vacation packages, scrapes hotel ratings and builds the web viewer payload.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		log.Logger = utils.NewLogger(cfg.AppEnv)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&destination, "destination", "", "destination slug (e.g. cancun)")
	rootCmd.PersistentFlags().StringVar(&source, "source", "", "package source slug (e.g. transat)")
}

// paths resolves the data layout for the flags of the current invocation.
func paths() storage.Paths {
	return storage.NewPaths(cfg.DataDir, cfg.OutputDir, destination, source)
}

// requireSlugs rejects commands invoked without --destination/--source. The
// run command prompts for them instead, so they cannot be required globally.
func requireSlugs() error {
	if destination == "" || source == "" {
		return fmt.Errorf("--destination and --source are required")
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
