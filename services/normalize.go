package services

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Stats counts per-field coercions applied by the normalization pass. The
// counts are non-fatal diagnostics for the caller to display.
type Stats map[string]int

func (s Stats) bump(key string) { s[key]++ }

// mealPlanLabels maps upstream meal-plan codes to display labels. Unknown
// codes keep the code and get a nil label.
var mealPlanLabels = map[string]string{
	"AI": "All Inclusive",
	"EP": "European Plan (no meals)",
}

// NormalizeBool coerces the tri-state numeric flags (0/1/2) some feeds use
// into a real boolean, or nil when the encoding is unrecognized.
func NormalizeBool(value any) *bool {
	switch v := value.(type) {
	case bool:
		return &v
	case float64: // JSON numbers decode as float64
		if v == 1 || v == 2 {
			t := true
			return &t
		}
		if v == 0 {
			f := false
			return &f
		}
	case int:
		return NormalizeBool(float64(v))
	}
	return nil
}

// NormalizeInt coerces a numeric field that may arrive as a number, numeric
// string, blank sentinel or null. Non-positive values mean "unknown".
func NormalizeInt(value any) *int {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		n := int(v)
		if n <= 0 {
			return nil
		}
		return &n
	case int:
		return NormalizeInt(float64(v))
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return nil
		}
		return &n
	}
	return nil
}

// NormalizeThumbnail forces thumbnail URLs to https, repairing
// protocol-relative and scheme-less values.
func NormalizeThumbnail(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		if strings.HasPrefix(raw, "//") {
			return "https:" + raw
		}
		return "https://" + strings.TrimLeft(raw, "/")
	}
	if parsed.Scheme != "https" {
		return strings.Replace(raw, parsed.Scheme+"://", "https://", 1)
	}
	return raw
}

// NormalizeMealPlan resolves a meal-plan code to its label. Unknown or empty
// codes yield a nil label.
func NormalizeMealPlan(code string) (string, *string) {
	if code == "" {
		return "", nil
	}
	if label, ok := mealPlanLabels[code]; ok {
		return code, &label
	}
	return code, nil
}

// NormalizeHotel coerces one merged hotel record's heterogeneous upstream
// encodings into the canonical schema, recording every coercion in stats.
// It operates on the decoded JSON document so it stays agnostic of which
// source produced the record.
func NormalizeHotel(hotel map[string]any, stats Stats) map[string]any {
	out := make(map[string]any, len(hotel))
	for k, v := range hotel {
		out[k] = v
	}

	out["drinks24h"] = ptrToAny(NormalizeBool(out["drinks24h"]))
	out["snacks24h"] = ptrToAny(NormalizeBool(out["snacks24h"]))
	if out["drinks24h"] == nil {
		stats.bump("drinks24h_null")
	}
	if out["snacks24h"] == nil {
		stats.bump("snacks24h_null")
	}

	out["number_of_restaurants"] = ptrToAny(NormalizeInt(out["number_of_restaurants"]))
	if out["number_of_restaurants"] == nil {
		stats.bump("number_of_restaurants_null")
	}

	if spa, ok := out["spa_available"]; !ok || spa == nil || spa == "" {
		out["spa_available"] = nil
		stats.bump("spa_available_null")
	}

	code, _ := out["meal_plan_code"].(string)
	normCode, label := NormalizeMealPlan(code)
	if normCode == "" {
		out["meal_plan_code"] = nil
		stats.bump("meal_plan_missing")
	} else {
		out["meal_plan_code"] = normCode
	}
	if label == nil {
		out["meal_plan_label"] = nil
		stats.bump("meal_plan_unknown")
	} else {
		out["meal_plan_label"] = *label
	}

	if normalized := NormalizeThumbnail(thumbnailSource(out)); normalized != "" {
		out["thumbnail_url"] = normalized
	} else {
		out["thumbnail_url"] = nil
		stats.bump("thumbnail_missing")
	}
	delete(out, "thumbnailPath")

	if packages, ok := out["packages"].([]any); ok {
		normalized := make([]any, 0, len(packages))
		for _, p := range packages {
			if pkg, ok := p.(map[string]any); ok {
				normalized = append(normalized, normalizePackage(pkg))
			} else {
				normalized = append(normalized, p)
			}
		}
		out["packages"] = normalized
	}

	return out
}

func normalizePackage(pkg map[string]any) map[string]any {
	out := make(map[string]any, len(pkg))
	for k, v := range pkg {
		out[k] = v
	}
	out["drinks24h"] = ptrToAny(NormalizeBool(out["drinks24h"]))
	out["snacks24h"] = ptrToAny(NormalizeBool(out["snacks24h"]))
	out["number_of_restaurants"] = ptrToAny(NormalizeInt(out["number_of_restaurants"]))
	if spa, ok := out["spa_available"]; !ok || spa == nil || spa == "" {
		out["spa_available"] = nil
	}
	code, _ := out["meal_plan_code"].(string)
	normCode, label := NormalizeMealPlan(code)
	if normCode == "" {
		out["meal_plan_code"] = nil
	} else {
		out["meal_plan_code"] = normCode
	}
	if label == nil {
		out["meal_plan_label"] = nil
	} else {
		out["meal_plan_label"] = *label
	}
	if normalized := NormalizeThumbnail(thumbnailSource(out)); normalized != "" {
		out["thumbnail_url"] = normalized
	} else {
		out["thumbnail_url"] = nil
	}
	delete(out, "thumbnailPath")
	return out
}

// thumbnailSource reads the thumbnail from a record, falling back to the
// legacy thumbnailPath key found in older merged files.
func thumbnailSource(m map[string]any) string {
	if s, ok := m["thumbnail_url"].(string); ok && s != "" {
		return s
	}
	s, _ := m["thumbnailPath"].(string)
	return s
}

// NormalizeAll normalizes a batch of merged hotels and returns the combined
// coercion diagnostics.
func NormalizeAll(hotels []map[string]any) ([]map[string]any, Stats) {
	stats := Stats{}
	out := make([]map[string]any, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, NormalizeHotel(h, stats))
	}
	return out, stats
}

// Summary renders the diagnostics in a stable order for logging.
func (s Stats) Summary() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", k, s[k]))
	}
	return lines
}

// ptrToAny widens a typed pointer into the map's value domain, mapping nil
// pointers to untyped nil so encoding/json emits null.
func ptrToAny[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
