package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"traveldeals/storage"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interactive pipeline launcher: filter, scrape, summarize, merge, normalize, webgen.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(os.Stdin)

		if destination == "" {
			destination = prompt(in, "Destination", "cancun")
		}
		if source == "" {
			source = prompt(in, "Package source", "transat")
		}
		budgetStr := prompt(in, "Budget (CAD)", "5000")
		budget, err := strconv.ParseFloat(budgetStr, 64)
		if err != nil {
			return fmt.Errorf("invalid budget amount: %q", budgetStr)
		}

		p := paths()
		fmt.Printf("\nPipeline configuration:\n")
		fmt.Printf("  Destination: %s\n", destination)
		fmt.Printf("  Source:      %s\n", source)
		fmt.Printf("  Budget:      $%.0f\n", budget)
		fmt.Printf("  Data path:   %s\n\n", p.RawPackages())

		if err := storage.RequireFile(p.RawPackages()); err != nil {
			log.Error().Str("path", p.RawPackages()).
				Msg("raw data not found, add packages.json to the raw directory first")
			return err
		}
		if !confirm(in, "Proceed with pipeline?") {
			fmt.Println("Pipeline cancelled.")
			return nil
		}

		type stage struct {
			name     string
			optional bool
			run      func() error
		}
		stages := []stage{
			{"filter packages by budget", false, func() error {
				filterBudget = budget
				return filterCmd.RunE(filterCmd, nil)
			}},
			{"scrape hotel ratings (this may take several minutes)", false, func() error {
				return scrapeCmd.RunE(scrapeCmd, nil)
			}},
			{"summarize reviews", true, func() error {
				return summarizeCmd.RunE(summarizeCmd, nil)
			}},
			{"merge package data with ratings", false, func() error {
				return mergeCmd.RunE(mergeCmd, nil)
			}},
			{"normalize merged data", false, func() error {
				return normalizeCmd.RunE(normalizeCmd, nil)
			}},
			{"generate hotels.json for the viewer", false, func() error {
				return webgenCmd.RunE(webgenCmd, nil)
			}},
		}

		for i, st := range stages {
			if st.optional && cfg.GeminiAPIKey == "" {
				fmt.Printf("\nSkipping %s (GEMINI_API_KEY not set).\n", st.name)
				continue
			}
			fmt.Printf("\n%s\nStage %d: %s\n%s\n", divider, i+1, st.name, divider)
			if err := st.run(); err != nil {
				return fmt.Errorf("stage %d (%s) failed: %w", i+1, st.name, err)
			}
			if i < len(stages)-1 && !confirm(in, "Continue to next stage?") {
				fmt.Printf("Pipeline stopped after stage %d.\n", i+1)
				return nil
			}
		}

		fmt.Printf("\n%s\nPipeline completed successfully.\n%s\n", divider, divider)
		fmt.Printf("\nData file: %s\n", p.WebOutput())
		return nil
	},
}

const divider = "============================================================"

func prompt(in *bufio.Reader, label, fallback string) string {
	fmt.Printf("%s [%s]: ", label, fallback)
	line, err := in.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func confirm(in *bufio.Reader, question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	line, err := in.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
