package services

import (
	"sort"

	"traveldeals/models"
)

// MergeReport holds run statistics computed from the merged dataset.
type MergeReport struct {
	TotalHotels    int
	WithRatings    int
	WithSummaries  int
	AveragePrice   float64
	MinPrice       float64
	MaxPrice       float64
	CheapestHotel  *models.HotelData
	TopRated       []*models.HotelData
	HotelsByCity   map[string]int
	TotalPackages  int
}

// BuildMergeReport computes the post-merge statistics shown at the end of
// the merge stage.
func BuildMergeReport(hotels []models.HotelData) *MergeReport {
	report := &MergeReport{HotelsByCity: make(map[string]int)}
	if len(hotels) == 0 {
		return report
	}

	report.MinPrice = hotels[0].PriceRange.Min
	var totalAvg float64

	for i := range hotels {
		h := &hotels[i]
		report.TotalHotels++
		report.TotalPackages += len(h.Packages)
		if h.GoogleRating != nil {
			report.WithRatings++
		}
		if h.ReviewSummary != nil {
			report.WithSummaries++
		}

		totalAvg += h.PriceRange.Avg
		if h.PriceRange.Min < report.MinPrice || report.CheapestHotel == nil {
			report.MinPrice = h.PriceRange.Min
			report.CheapestHotel = h
		}
		if h.PriceRange.Max > report.MaxPrice {
			report.MaxPrice = h.PriceRange.Max
		}

		if h.City != "" {
			report.HotelsByCity[h.City]++
		}
	}
	report.AveragePrice = totalAvg / float64(report.TotalHotels)

	// Top 5 by scraped rating.
	rated := make([]*models.HotelData, 0, len(hotels))
	for i := range hotels {
		if hotels[i].GoogleRating != nil {
			rated = append(rated, &hotels[i])
		}
	}
	sort.Slice(rated, func(i, j int) bool {
		return *rated[i].GoogleRating > *rated[j].GoogleRating
	})
	if len(rated) > 5 {
		rated = rated[:5]
	}
	report.TopRated = rated

	return report
}
