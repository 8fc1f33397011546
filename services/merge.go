package services

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"traveldeals/models"
)

const mapsSearchBase = "https://www.google.com/maps/search/"

// CanonicalHotelKey is the single join-key normalization applied at every
// point where packages and ratings meet: case-fold plus trim. Upstream
// sources disagree on casing, so exact matches are not trusted.
func CanonicalHotelKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParsePackages decodes individual package records, skipping malformed ones
// with a warning so a single bad record never aborts the batch.
func ParsePackages(raw []json.RawMessage) []models.HotelPackage {
	packages := make([]models.HotelPackage, 0, len(raw))
	for _, r := range raw {
		var pkg models.HotelPackage
		if err := json.Unmarshal(r, &pkg); err != nil {
			log.Warn().Err(err).Msg("skipping malformed package record")
			continue
		}
		if err := pkg.Validate(); err != nil {
			log.Warn().Err(err).Str("hotel", pkg.HotelName).Msg("skipping invalid package")
			continue
		}
		packages = append(packages, pkg)
	}
	return packages
}

// MergeData joins packages with ratings by hotel name and computes the
// derived aggregates. A hotel with zero valid packages is dropped entirely;
// a missing rating leaves the rating fields nil.
func MergeData(packages []models.HotelPackage, ratings []models.HotelRating, source string) []models.HotelData {
	ratingsByKey := make(map[string]models.HotelRating, len(ratings))
	for _, r := range ratings {
		ratingsByKey[CanonicalHotelKey(r.HotelName)] = r
	}

	// Group by hotel, preserving first-seen order.
	groups := make(map[string][]models.HotelPackage)
	var order []string
	names := make(map[string]string)
	for _, pkg := range packages {
		key := CanonicalHotelKey(pkg.HotelName)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
			names[key] = pkg.HotelName
		}
		groups[key] = append(groups[key], pkg)
	}

	merged := make([]models.HotelData, 0, len(order))
	for _, key := range order {
		group := groups[key]
		if len(group) == 0 {
			log.Warn().Str("hotel", names[key]).Msg("dropping hotel with no valid packages")
			continue
		}

		hotel := models.HotelData{
			Name:          names[key],
			City:          group[0].City,
			Stars:         group[0].Stars,
			Source:        source,
			Packages:      group,
			GoogleMapsURL: mapsSearchBase + url.QueryEscape(names[key]),
			PriceRange:    priceRange(group),
			Drinks24h:     anyDrinks(group),
			Snacks24h:     anySnacks(group),
		}

		// First non-null wins for the single-valued optionals, scanned in
		// package order.
		for _, pkg := range group {
			if hotel.AirTransatURL == nil && pkg.URL != nil {
				hotel.AirTransatURL = pkg.URL
			}
			if hotel.AdultOnly == nil && pkg.AdultOnly != nil {
				hotel.AdultOnly = pkg.AdultOnly
			}
			if hotel.NumberOfRestaurants == nil && pkg.NumberOfRestaurants != nil {
				hotel.NumberOfRestaurants = pkg.NumberOfRestaurants
			}
			if hotel.SpaAvailable == nil && pkg.SpaAvailable != nil {
				hotel.SpaAvailable = pkg.SpaAvailable
			}
			if hotel.MealPlanCode == nil && pkg.MealPlanCode != nil && *pkg.MealPlanCode != "" {
				hotel.MealPlanCode = pkg.MealPlanCode
			}
			if hotel.MealPlanLabel == nil && pkg.MealPlanLabel != nil && *pkg.MealPlanLabel != "" {
				hotel.MealPlanLabel = pkg.MealPlanLabel
			}
			if hotel.ThumbnailURL == nil && pkg.ThumbnailURL != nil && *pkg.ThumbnailURL != "" {
				hotel.ThumbnailURL = pkg.ThumbnailURL
			}
		}

		dep, ret := dateEnvelope(group)
		hotel.DepartureDate = &dep
		hotel.ReturnDate = &ret

		if rating, ok := ratingsByKey[key]; ok {
			hotel.GoogleRating = rating.Rating
			hotel.ReviewCount = rating.ReviewCount
			hotel.ReviewSummary = rating.ReviewSummary
		}

		merged = append(merged, hotel)
	}
	return merged
}

func priceRange(group []models.HotelPackage) models.PriceRange {
	pr := models.PriceRange{Min: group[0].Price, Max: group[0].Price}
	var sum float64
	for _, pkg := range group {
		if pkg.Price < pr.Min {
			pr.Min = pkg.Price
		}
		if pkg.Price > pr.Max {
			pr.Max = pkg.Price
		}
		sum += pkg.Price
	}
	pr.Avg = sum / float64(len(group))
	return pr
}

func anyDrinks(group []models.HotelPackage) bool {
	for _, pkg := range group {
		if pkg.Drinks24h {
			return true
		}
	}
	return false
}

func anySnacks(group []models.HotelPackage) bool {
	for _, pkg := range group {
		if pkg.Snacks24h {
			return true
		}
	}
	return false
}

// dateEnvelope returns the earliest departure and latest return across the
// group, formatted as ISO timestamps.
func dateEnvelope(group []models.HotelPackage) (string, string) {
	dep := group[0].Dates.Departure.Time
	ret := group[0].Dates.Return.Time
	for _, pkg := range group[1:] {
		if pkg.Dates.Departure.Before(dep) {
			dep = pkg.Dates.Departure.Time
		}
		if pkg.Dates.Return.After(ret) {
			ret = pkg.Dates.Return.Time
		}
	}
	const layout = "2006-01-02T15:04:05"
	return dep.Format(layout), ret.Format(layout)
}
