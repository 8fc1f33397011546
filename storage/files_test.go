package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testPaths(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	return NewPaths(filepath.Join(dir, "data"), filepath.Join(dir, "outputs"), "cancun", "transat")
}

func TestPathsLayout(t *testing.T) {
	p := NewPaths("data", "outputs", "cancun", "transat")

	require.Equal(t, filepath.Join("data", "cancun", "transat", "raw", "packages.json"), p.RawPackages())
	require.Equal(t, filepath.Join("data", "cancun", "transat", "filtered", "budget_5000.json"), p.FilteredFile(5000))
	require.Equal(t, filepath.Join("data", "cancun", "transat", "filtered", "budget_5000.json"), p.FilteredFile(5000.9))
	require.Equal(t, filepath.Join("data", "cancun", "transat", "scraped", "google_ratings.json"), p.RatingsFile())
	require.Equal(t, filepath.Join("data", "cancun", "transat", "scraped", "ratings_with_summaries.json"), p.SummarizedFile())
	require.Equal(t, filepath.Join("data", "cancun", "transat", "merged", "final_data.json"), p.MergedFile())
	require.Equal(t, filepath.Join("data", "cancun", "transat", "normalized", "final_data.json"), p.NormalizedFile())
	require.Equal(t, filepath.Join("outputs", "cancun", "transat", "hotels.json"), p.WebOutput())
}

func TestSaveAndLoadJSON(t *testing.T) {
	p := testPaths(t)
	payload := map[string]any{"hello": "world"}

	// SaveJSON creates missing parent directories.
	require.NoError(t, SaveJSON(p.MergedFile(), payload))

	var got map[string]any
	require.NoError(t, LoadJSON(p.MergedFile(), &got))
	require.Equal(t, "world", got["hello"])
}

func TestLatestFiltered(t *testing.T) {
	p := testPaths(t)

	_, err := p.LatestFiltered()
	require.Error(t, err)

	require.NoError(t, SaveJSON(p.FilteredFile(3000), []any{}))
	older := p.FilteredFile(3000)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))
	require.NoError(t, SaveJSON(p.FilteredFile(5000), []any{}))

	latest, err := p.LatestFiltered()
	require.NoError(t, err)
	require.Equal(t, p.FilteredFile(5000), latest)
}

func TestLatestBudget(t *testing.T) {
	p := testPaths(t)

	require.Equal(t, 5000, p.LatestBudget(5000))

	require.NoError(t, SaveJSON(p.FilteredFile(3000), []any{}))
	older := p.FilteredFile(3000)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))
	require.NoError(t, SaveJSON(p.FilteredFile(7500), []any{}))

	require.Equal(t, 7500, p.LatestBudget(5000))
}

func TestRequireFile(t *testing.T) {
	p := testPaths(t)

	require.Error(t, RequireFile(p.RawPackages()))

	require.NoError(t, SaveJSON(p.RawPackages(), []any{}))
	require.NoError(t, RequireFile(p.RawPackages()))

	// A directory is not a usable input file.
	require.Error(t, RequireFile(filepath.Dir(p.RawPackages())))
}

func TestLoadPackagesEnvelope(t *testing.T) {
	p := testPaths(t)

	bare := p.FilteredFile(1000)
	require.NoError(t, os.MkdirAll(filepath.Dir(bare), 0o755))
	require.NoError(t, os.WriteFile(bare, []byte(`[{"a":1},{"b":2}]`), 0o644))
	pkgs, err := LoadPackagesEnvelope(bare)
	require.NoError(t, err)
	require.Len(t, pkgs, 2)

	wrapped := p.FilteredFile(2000)
	require.NoError(t, os.WriteFile(wrapped, []byte(`{"packages":[{"a":1}]}`), 0o644))
	pkgs, err = LoadPackagesEnvelope(wrapped)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	noKey := p.FilteredFile(3000)
	require.NoError(t, os.WriteFile(noKey, []byte(`{"items":[]}`), 0o644))
	_, err = LoadPackagesEnvelope(noKey)
	require.Error(t, err)
}
