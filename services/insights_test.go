package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"traveldeals/models"
)

func ratedHotelData(name string, rating float64, min, max, avg float64) models.HotelData {
	return models.HotelData{
		Name:         name,
		City:         "Cancun",
		GoogleRating: &rating,
		PriceRange:   models.PriceRange{Min: min, Max: max, Avg: avg},
	}
}

func TestBuildMergeReport(t *testing.T) {
	hotels := []models.HotelData{
		ratedHotelData("A", 4.2, 3000, 5000, 4000),
		ratedHotelData("B", 4.8, 2000, 6000, 4000),
		{Name: "C", City: "Tulum", PriceRange: models.PriceRange{Min: 2500, Max: 3500, Avg: 3000}},
	}
	hotels[0].ReviewSummary = &models.ReviewSummary{OverallSummary: "Good."}

	report := BuildMergeReport(hotels)

	require.Equal(t, 3, report.TotalHotels)
	require.Equal(t, 2, report.WithRatings)
	require.Equal(t, 1, report.WithSummaries)
	require.Equal(t, 2000.0, report.MinPrice)
	require.Equal(t, 6000.0, report.MaxPrice)
	require.InDelta(t, 3666.67, report.AveragePrice, 0.01)
	require.Equal(t, "B", report.CheapestHotel.Name)

	require.Len(t, report.TopRated, 2)
	require.Equal(t, "B", report.TopRated[0].Name)
	require.Equal(t, "A", report.TopRated[1].Name)

	require.Equal(t, 2, report.HotelsByCity["Cancun"])
	require.Equal(t, 1, report.HotelsByCity["Tulum"])
}

func TestBuildMergeReportEmpty(t *testing.T) {
	report := BuildMergeReport(nil)
	require.Equal(t, 0, report.TotalHotels)
	require.NotNil(t, report.HotelsByCity)
}
