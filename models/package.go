package models

import (
	"fmt"
	"strings"
	"time"
)

// FlexTime is a time.Time that unmarshals the date formats seen in upstream
// package feeds: full RFC3339, ISO without an offset, and plain dates.
type FlexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseFlexTime parses s against the accepted upstream layouts. A trailing
// "Z" designator is treated as UTC.
func ParseFlexTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range flexLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// "2006-01-02T15:04:05Z" is covered by RFC3339, but some feeds emit
	// fractional seconds without an offset.
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return fmt.Errorf("date is required")
	}
	parsed, err := ParseFlexTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format("2006-01-02T15:04:05") + `"`), nil
}

// PackageDates is the travel window of one package.
type PackageDates struct {
	Departure FlexTime `json:"departure"`
	Return    FlexTime `json:"return"`
}

// HotelPackage is one bookable offer from a package source (Transat, Expedia...).
// Records are immutable once created; transforms produce new ones.
type HotelPackage struct {
	HotelName           string       `json:"hotel_name"`
	City                string       `json:"city"`
	Stars               *int         `json:"stars"`
	RoomType            string       `json:"room_type"`
	MealPlanCode        *string      `json:"meal_plan_code,omitempty"`
	MealPlanLabel       *string      `json:"meal_plan_label,omitempty"`
	NumberOfRestaurants *int         `json:"number_of_restaurants,omitempty"`
	SpaAvailable        any          `json:"spa_available,omitempty"` // upstream sends string, int or null
	ThumbnailURL        *string      `json:"thumbnail_url,omitempty"`
	URL                 *string      `json:"url,omitempty"`
	Drinks24h           bool         `json:"drinks24h"`
	Snacks24h           bool         `json:"snacks24h"`
	AdultOnly           *int         `json:"adult_only"`
	Amenities           []string     `json:"amenities"`
	Price               float64      `json:"price"`
	Dates               PackageDates `json:"dates"`
}

// Validate reports the first structural problem with the package, mirroring
// the checks applied when reading raw listings.
func (p *HotelPackage) Validate() error {
	if strings.TrimSpace(p.HotelName) == "" {
		return fmt.Errorf("hotel_name is required")
	}
	if strings.TrimSpace(p.City) == "" {
		return fmt.Errorf("city is required")
	}
	if p.Price <= 0 {
		return fmt.Errorf("price must be positive, got %v", p.Price)
	}
	if p.Dates.Departure.IsZero() || p.Dates.Return.IsZero() {
		return fmt.Errorf("departure and return dates are required")
	}
	if p.Dates.Return.Before(p.Dates.Departure.Time) {
		return fmt.Errorf("return date precedes departure")
	}
	return nil
}
