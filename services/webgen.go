package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"traveldeals/models"
)

// mergedDoc decodes one merged hotel while deferring package decoding, so a
// single unparseable package can be skipped instead of rejecting the hotel.
type mergedDoc struct {
	models.HotelData
	Packages []json.RawMessage `json:"packages"`
}

// TransformToWeb reshapes merged hotel records into the viewer payload.
// Ids are sequential zero-padded strings assigned in input order. A package
// that fails to reshape is skipped with a warning, never fatal.
func TransformToWeb(merged []json.RawMessage, destination, source string, budget int, generatedAt time.Time) models.WebOutput {
	webHotels := make([]models.WebHotel, 0, len(merged))

	for idx, raw := range merged {
		var doc mergedDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			log.Warn().Err(err).Int("index", idx).Msg("skipping unreadable merged hotel")
			continue
		}

		webPackages := make([]models.WebPackage, 0, len(doc.Packages))
		for _, rawPkg := range doc.Packages {
			webPkg, err := reshapePackage(rawPkg)
			if err != nil {
				log.Warn().Err(err).Str("hotel", doc.Name).Msg("skipping invalid package")
				continue
			}
			webPackages = append(webPackages, webPkg)
		}

		webHotels = append(webHotels, models.WebHotel{
			ID:                  fmt.Sprintf("hotel_%03d", len(webHotels)),
			Name:                doc.Name,
			City:                doc.City,
			Stars:               doc.Stars,
			GoogleRating:        doc.GoogleRating,
			ReviewCount:         doc.ReviewCount,
			AirTransatURL:       doc.AirTransatURL,
			GoogleMapsURL:       doc.GoogleMapsURL,
			Drinks24h:           doc.Drinks24h,
			Snacks24h:           doc.Snacks24h,
			AdultOnly:           doc.AdultOnly,
			NumberOfRestaurants: doc.NumberOfRestaurants,
			SpaAvailable:        doc.SpaAvailable,
			MealPlanCode:        doc.MealPlanCode,
			MealPlanLabel:       doc.MealPlanLabel,
			ThumbnailURL:        doc.ThumbnailURL,
			DepartureDate:       doc.DepartureDate,
			ReturnDate:          doc.ReturnDate,
			PriceRange:          doc.PriceRange,
			PackageCount:        len(webPackages),
			Packages:            webPackages,
			ReviewSummary:       doc.ReviewSummary,
		})
	}

	return models.WebOutput{
		Metadata: models.WebMetadata{
			Destination: destination,
			Source:      source,
			GeneratedAt: generatedAt.Format(time.RFC3339),
			Budget:      budget,
			TotalHotels: len(webHotels),
		},
		Hotels: webHotels,
	}
}

func reshapePackage(raw json.RawMessage) (models.WebPackage, error) {
	var pkg models.HotelPackage
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return models.WebPackage{}, fmt.Errorf("decode package: %w", err)
	}

	dep := pkg.Dates.Departure.Time
	ret := pkg.Dates.Return.Time
	if dep.IsZero() || ret.IsZero() {
		return models.WebPackage{}, fmt.Errorf("package is missing dates")
	}

	return models.WebPackage{
		Departure:           dep.Format("2006-01-02"),
		Return:              ret.Format("2006-01-02"),
		DurationDays:        int(ret.Sub(dep).Hours() / 24),
		RoomType:            pkg.RoomType,
		MealPlanCode:        pkg.MealPlanCode,
		MealPlanLabel:       pkg.MealPlanLabel,
		NumberOfRestaurants: pkg.NumberOfRestaurants,
		SpaAvailable:        pkg.SpaAvailable,
		ThumbnailURL:        pkg.ThumbnailURL,
		Price:               pkg.Price,
		URL:                 pkg.URL,
		Drinks24h:           pkg.Drinks24h,
		Snacks24h:           pkg.Snacks24h,
	}, nil
}
