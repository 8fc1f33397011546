package services

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"traveldeals/models"
)

// rawTransatPackage is the package shape emitted by the Transat feed.
type rawTransatPackage struct {
	Hotel struct {
		Name                string   `json:"name"`
		City                string   `json:"city"`
		TransatStars        *float64 `json:"transatStars"`
		URL                 *string  `json:"url"`
		Drinks24h           int      `json:"drinks24h"`
		Snacks24h           int      `json:"snacks24h"`
		// RawMessage keeps an absent key (defaults to 0) apart from an
		// explicit null (unknown).
		AdultOnly json.RawMessage `json:"adultOnly"`
		NumberOfRestaurants int      `json:"numberOfRestaurants"`
		ThumbnailURL        *string  `json:"thumbnailUrl"`
		SpaAvailable        any      `json:"spaAvailable"`
	} `json:"hotel"`
	MealPlanCode       string  `json:"mealPlanCode"`
	MealPlanLabel      *string `json:"mealPlanLabel"`
	TotalPriceForGroup float64 `json:"totalPriceForGroup"`
	DepartureDate      string  `json:"departureDate"`
	ReturnDate         string  `json:"returnDate"`
}

// TransformTransatPackage converts one Transat-shaped record into the
// pipeline's standard package shape.
func TransformTransatPackage(raw json.RawMessage) (models.HotelPackage, error) {
	var src rawTransatPackage
	if err := json.Unmarshal(raw, &src); err != nil {
		return models.HotelPackage{}, fmt.Errorf("decode package: %w", err)
	}

	adultOnly, err := decodeAdultOnly(src.Hotel.AdultOnly)
	if err != nil {
		return models.HotelPackage{}, err
	}

	var amenities []string
	if src.MealPlanCode == "AI" {
		amenities = append(amenities, "All-Inclusive")
	}
	if adultOnly != nil && *adultOnly == 1 {
		amenities = append(amenities, "Adults Only")
	}
	if src.Hotel.Drinks24h == 1 {
		amenities = append(amenities, "24h Drinks")
	}
	if src.Hotel.Snacks24h == 1 {
		amenities = append(amenities, "24h Snacks")
	}
	if src.Hotel.NumberOfRestaurants > 0 {
		amenities = append(amenities, fmt.Sprintf("%d Restaurants", src.Hotel.NumberOfRestaurants))
	}
	if amenities == nil {
		amenities = []string{}
	}

	// Transat occasionally reports fractional stars (4.5); round to int.
	var stars *int
	if src.Hotel.TransatStars != nil {
		v := int(math.Round(*src.Hotel.TransatStars))
		stars = &v
	}

	roomType := src.MealPlanCode
	if roomType == "" {
		roomType = "Standard"
	}
	name := src.Hotel.Name
	if strings.TrimSpace(name) == "" {
		name = "Unknown Hotel"
	}
	city := src.Hotel.City
	if strings.TrimSpace(city) == "" {
		city = "Unknown"
	}

	pkg := models.HotelPackage{
		HotelName: name,
		City:      city,
		Stars:     stars,
		RoomType:  roomType,
		URL:       src.Hotel.URL,
		Drinks24h: src.Hotel.Drinks24h == 1,
		Snacks24h: src.Hotel.Snacks24h == 1,
		AdultOnly: adultOnly,
		Amenities: amenities,
		Price:     src.TotalPriceForGroup,
	}
	if src.MealPlanCode != "" {
		code := src.MealPlanCode
		pkg.MealPlanCode = &code
	}
	pkg.MealPlanLabel = src.MealPlanLabel
	if src.Hotel.NumberOfRestaurants > 0 {
		n := src.Hotel.NumberOfRestaurants
		pkg.NumberOfRestaurants = &n
	}
	pkg.SpaAvailable = src.Hotel.SpaAvailable
	pkg.ThumbnailURL = src.Hotel.ThumbnailURL

	dep, err := models.ParseFlexTime(src.DepartureDate)
	if err != nil {
		return models.HotelPackage{}, fmt.Errorf("departure date: %w", err)
	}
	ret, err := models.ParseFlexTime(src.ReturnDate)
	if err != nil {
		return models.HotelPackage{}, fmt.Errorf("return date: %w", err)
	}
	pkg.Dates = models.PackageDates{
		Departure: models.FlexTime{Time: dep},
		Return:    models.FlexTime{Time: ret},
	}

	return pkg, nil
}

// decodeAdultOnly resolves the feed's adultOnly field. An absent key means
// the hotel is not adults-only (0); an explicit null stays unknown.
func decodeAdultOnly(raw json.RawMessage) (*int, error) {
	if len(raw) == 0 {
		zero := 0
		return &zero, nil
	}
	if string(raw) == "null" {
		return nil, nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("adultOnly: %w", err)
	}
	return &v, nil
}

// FilterByBudget transforms raw source records and keeps the valid packages
// priced at or under the budget ceiling (inclusive). Invalid records are
// skipped with a warning, never fatal.
func FilterByBudget(rawPackages []json.RawMessage, budget float64) []models.HotelPackage {
	filtered := make([]models.HotelPackage, 0, len(rawPackages))
	for _, raw := range rawPackages {
		pkg, err := TransformTransatPackage(raw)
		if err != nil {
			log.Warn().Err(err).Msg("skipping invalid package")
			continue
		}
		if err := pkg.Validate(); err != nil {
			log.Warn().Err(err).Str("hotel", pkg.HotelName).Msg("skipping invalid package")
			continue
		}
		if pkg.Price <= budget {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}

// ExtractUniqueHotels returns the sorted, distinct hotel names appearing in
// the filtered package set.
func ExtractUniqueHotels(packages []models.HotelPackage) []string {
	seen := make(map[string]struct{})
	var hotels []string
	for _, pkg := range packages {
		name := strings.TrimSpace(pkg.HotelName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		hotels = append(hotels, name)
	}
	sort.Strings(hotels)
	return hotels
}
