package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Paths resolves the on-disk layout for one destination/source run:
//
//	data/<destination>/<source>/{raw,filtered,scraped,merged,normalized}
//	outputs/<destination>/<source>/hotels.json
type Paths struct {
	DataDir     string
	OutputDir   string
	Destination string
	Source      string
}

func NewPaths(dataDir, outputDir, destination, source string) Paths {
	return Paths{DataDir: dataDir, OutputDir: outputDir, Destination: destination, Source: source}
}

func (p Paths) base() string {
	return filepath.Join(p.DataDir, p.Destination, p.Source)
}

func (p Paths) RawPackages() string {
	return filepath.Join(p.base(), "raw", "packages.json")
}

func (p Paths) FilteredDir() string {
	return filepath.Join(p.base(), "filtered")
}

func (p Paths) FilteredFile(budget float64) string {
	return filepath.Join(p.FilteredDir(), fmt.Sprintf("budget_%d.json", int(budget)))
}

func (p Paths) ScrapedDir() string {
	return filepath.Join(p.base(), "scraped")
}

func (p Paths) RatingsFile() string {
	return filepath.Join(p.ScrapedDir(), "google_ratings.json")
}

func (p Paths) SummarizedFile() string {
	return filepath.Join(p.ScrapedDir(), "ratings_with_summaries.json")
}

func (p Paths) DebugDir() string {
	return filepath.Join(p.ScrapedDir(), "debug")
}

func (p Paths) MergedFile() string {
	return filepath.Join(p.base(), "merged", "final_data.json")
}

func (p Paths) NormalizedFile() string {
	return filepath.Join(p.base(), "normalized", "final_data.json")
}

func (p Paths) WebOutput() string {
	return filepath.Join(p.OutputDir, p.Destination, p.Source, "hotels.json")
}

// LatestFiltered returns the most recently modified JSON file in the filtered
// directory. The filter stage writes one file per budget, and downstream
// stages consume whichever ran last.
func (p Paths) LatestFiltered() (string, error) {
	entries, err := filepath.Glob(filepath.Join(p.FilteredDir(), "*.json"))
	if err != nil || len(entries) == 0 {
		return "", fmt.Errorf("no filtered packages found in %s", p.FilteredDir())
	}
	latest := ""
	var latestMod int64
	for _, path := range entries {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = path
			latestMod = info.ModTime().UnixNano()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no filtered packages found in %s", p.FilteredDir())
	}
	return latest, nil
}

// LatestBudget recovers the budget ceiling from the newest budget_<N>.json
// filename. Returns the fallback when no filtered file exists.
func (p Paths) LatestBudget(fallback int) int {
	entries, err := filepath.Glob(filepath.Join(p.FilteredDir(), "budget_*.json"))
	if err != nil || len(entries) == 0 {
		return fallback
	}
	latest := ""
	var latestMod int64
	for _, path := range entries {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = path
			latestMod = info.ModTime().UnixNano()
		}
	}
	stem := strings.TrimSuffix(filepath.Base(latest), ".json")
	if n, err := strconv.Atoi(strings.TrimPrefix(stem, "budget_")); err == nil {
		return n
	}
	return fallback
}

// RequireFile is the fatal-at-start precondition check: a stage's required
// input must exist before the stage begins.
func RequireFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path is not a file: %s", path)
	}
	return nil
}

// LoadJSON reads path and unmarshals it into dst.
func LoadJSON(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// SaveJSON writes v to path as indented JSON, creating parent directories.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadPackagesEnvelope reads a packages listing that is either a bare JSON
// array or wrapped in a {"packages": [...]} envelope.
func LoadPackagesEnvelope(path string) ([]json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(b, &arr); err == nil {
		return arr, nil
	}
	var envelope struct {
		Packages []json.RawMessage `json:"packages"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if envelope.Packages == nil {
		return nil, fmt.Errorf("%s must contain a list of packages or an object with a 'packages' key", path)
	}
	return envelope.Packages, nil
}
