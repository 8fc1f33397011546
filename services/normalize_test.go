package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeBool(t *testing.T) {
	truthy := []any{true, float64(1), float64(2), 1, 2}
	for _, v := range truthy {
		got := NormalizeBool(v)
		require.NotNil(t, got, "value %v", v)
		require.True(t, *got, "value %v", v)
	}

	got := NormalizeBool(float64(0))
	require.NotNil(t, got)
	require.False(t, *got)

	for _, v := range []any{nil, "yes", float64(7), 3.5} {
		require.Nil(t, NormalizeBool(v), "value %v", v)
	}
}

func TestNormalizeInt(t *testing.T) {
	got := NormalizeInt(float64(5))
	require.NotNil(t, got)
	require.Equal(t, 5, *got)

	got = NormalizeInt(" 12 ")
	require.NotNil(t, got)
	require.Equal(t, 12, *got)

	// Zero and negatives are "unknown" sentinels, not real counts.
	for _, v := range []any{nil, "", "  ", float64(0), float64(-3), "abc", "0"} {
		require.Nil(t, NormalizeInt(v), "value %v", v)
	}
}

func TestNormalizeThumbnail(t *testing.T) {
	cases := map[string]string{
		"":                             "",
		"https://cdn.example.com/a.jpg": "https://cdn.example.com/a.jpg",
		"http://cdn.example.com/a.jpg":  "https://cdn.example.com/a.jpg",
		"//cdn.example.com/a.jpg":       "https://cdn.example.com/a.jpg",
		"cdn.example.com/a.jpg":         "https://cdn.example.com/a.jpg",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeThumbnail(in), "input %q", in)
	}
}

func TestNormalizeMealPlan(t *testing.T) {
	code, label := NormalizeMealPlan("AI")
	require.Equal(t, "AI", code)
	require.NotNil(t, label)
	require.Equal(t, "All Inclusive", *label)

	code, label = NormalizeMealPlan("EP")
	require.Equal(t, "EP", code)
	require.NotNil(t, label)
	require.Equal(t, "European Plan (no meals)", *label)

	code, label = NormalizeMealPlan("XX")
	require.Equal(t, "XX", code)
	require.Nil(t, label)

	code, label = NormalizeMealPlan("")
	require.Equal(t, "", code)
	require.Nil(t, label)
}

func TestNormalizeHotel(t *testing.T) {
	hotel := map[string]any{
		"name":                  "Grand Palladium",
		"drinks24h":             float64(2),
		"snacks24h":             float64(0),
		"number_of_restaurants": "4",
		"spa_available":         "",
		"meal_plan_code":        "AI",
		"thumbnail_url":         "//cdn.example.com/thumb.jpg",
		"packages": []any{
			map[string]any{
				"drinks24h":             float64(1),
				"snacks24h":             nil,
				"number_of_restaurants": float64(0),
				"meal_plan_code":        "ZZ",
				"thumbnail_url":         "http://cdn.example.com/p.jpg",
			},
		},
	}
	stats := Stats{}

	out := NormalizeHotel(hotel, stats)

	require.Equal(t, true, out["drinks24h"])
	require.Equal(t, false, out["snacks24h"])
	require.Equal(t, 4, out["number_of_restaurants"])
	require.Nil(t, out["spa_available"])
	require.Equal(t, "AI", out["meal_plan_code"])
	require.Equal(t, "All Inclusive", out["meal_plan_label"])
	require.Equal(t, "https://cdn.example.com/thumb.jpg", out["thumbnail_url"])

	packages, ok := out["packages"].([]any)
	require.True(t, ok)
	require.Len(t, packages, 1)
	pkg := packages[0].(map[string]any)
	require.Equal(t, true, pkg["drinks24h"])
	require.Nil(t, pkg["snacks24h"])
	require.Nil(t, pkg["number_of_restaurants"])
	require.Equal(t, "ZZ", pkg["meal_plan_code"])
	require.Nil(t, pkg["meal_plan_label"])
	require.Equal(t, "https://cdn.example.com/p.jpg", pkg["thumbnail_url"])

	require.Equal(t, 1, stats["spa_available_null"])

	// Input map is untouched.
	require.Equal(t, float64(2), hotel["drinks24h"])
}

func TestNormalizeHotelLegacyThumbnailKey(t *testing.T) {
	hotel := map[string]any{
		"name":          "Old Merge",
		"thumbnailPath": "//cdn.example.com/legacy.jpg",
		"packages": []any{
			map[string]any{"thumbnailPath": "cdn.example.com/legacy-pkg.jpg"},
		},
	}
	stats := Stats{}

	out := NormalizeHotel(hotel, stats)

	// Older merged files carry thumbnailPath; it feeds the canonical key and
	// is dropped from the output.
	require.Equal(t, "https://cdn.example.com/legacy.jpg", out["thumbnail_url"])
	require.NotContains(t, out, "thumbnailPath")
	require.Equal(t, 0, stats["thumbnail_missing"])

	pkg := out["packages"].([]any)[0].(map[string]any)
	require.Equal(t, "https://cdn.example.com/legacy-pkg.jpg", pkg["thumbnail_url"])
	require.NotContains(t, pkg, "thumbnailPath")
}

func TestNormalizeAllCollectsStats(t *testing.T) {
	hotels := []map[string]any{
		{"name": "A"},
		{"name": "B"},
	}

	out, stats := NormalizeAll(hotels)

	require.Len(t, out, 2)
	require.Equal(t, 2, stats["drinks24h_null"])
	require.Equal(t, 2, stats["thumbnail_missing"])

	lines := stats.Summary()
	require.NotEmpty(t, lines)
	require.Contains(t, lines, "drinks24h_null: 2")
}
