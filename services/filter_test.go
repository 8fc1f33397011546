package services

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func rawPackage(name string, price float64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"hotel": {
			"name": %q,
			"city": "Cancun",
			"transatStars": 4.5,
			"drinks24h": 1,
			"snacks24h": 0,
			"adultOnly": 1,
			"numberOfRestaurants": 5
		},
		"mealPlanCode": "AI",
		"totalPriceForGroup": %v,
		"departureDate": "2025-01-15T00:00:00",
		"returnDate": "2025-01-22T00:00:00"
	}`, name, price))
}

func TestFilterByBudgetInclusiveBoundary(t *testing.T) {
	raw := []json.RawMessage{
		rawPackage("Hotel A", 4999),
		rawPackage("Hotel B", 5000),
		rawPackage("Hotel C", 5001),
	}

	filtered := FilterByBudget(raw, 5000)

	require.Len(t, filtered, 2)
	require.Equal(t, "Hotel A", filtered[0].HotelName)
	require.Equal(t, "Hotel B", filtered[1].HotelName)
}

func TestFilterByBudgetSkipsInvalidRecords(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"not": "a package"`),
		json.RawMessage(`{"hotel": {"name": "No Price", "city": "Cancun"}, "totalPriceForGroup": 0, "departureDate": "2025-01-15", "returnDate": "2025-01-22"}`),
		rawPackage("Hotel A", 3000),
	}

	filtered := FilterByBudget(raw, 5000)

	require.Len(t, filtered, 1)
	require.Equal(t, "Hotel A", filtered[0].HotelName)
}

func TestTransformTransatPackage(t *testing.T) {
	pkg, err := TransformTransatPackage(rawPackage("Grand Palladium", 4200))
	require.NoError(t, err)

	require.Equal(t, "Grand Palladium", pkg.HotelName)
	require.Equal(t, "Cancun", pkg.City)
	require.NotNil(t, pkg.Stars)
	require.Equal(t, 5, *pkg.Stars) // 4.5 rounds up
	require.Equal(t, "AI", pkg.RoomType)
	require.True(t, pkg.Drinks24h)
	require.False(t, pkg.Snacks24h)
	require.Equal(t, []string{"All-Inclusive", "Adults Only", "24h Drinks", "5 Restaurants"}, pkg.Amenities)
	require.Equal(t, 4200.0, pkg.Price)
	require.Equal(t, "2025-01-15", pkg.Dates.Departure.Format("2006-01-02"))
}

func TestTransformTransatPackageDefaults(t *testing.T) {
	raw := json.RawMessage(`{
		"hotel": {"name": "Bare Hotel", "city": "Cancun"},
		"totalPriceForGroup": 1000,
		"departureDate": "2025-03-01",
		"returnDate": "2025-03-08"
	}`)

	pkg, err := TransformTransatPackage(raw)
	require.NoError(t, err)

	require.Equal(t, "Standard", pkg.RoomType)
	require.Equal(t, []string{}, pkg.Amenities)
	require.Nil(t, pkg.MealPlanCode)
	// A feed that omits adultOnly entirely is treated as "not adults only".
	require.NotNil(t, pkg.AdultOnly)
	require.Equal(t, 0, *pkg.AdultOnly)
}

func TestTransformTransatPackageExplicitNullAdultOnly(t *testing.T) {
	raw := json.RawMessage(`{
		"hotel": {"name": "Null Hotel", "city": "Cancun", "adultOnly": null},
		"totalPriceForGroup": 1000,
		"departureDate": "2025-03-01",
		"returnDate": "2025-03-08"
	}`)

	pkg, err := TransformTransatPackage(raw)
	require.NoError(t, err)

	// An explicit null means the feed does not know, unlike an absent key.
	require.Nil(t, pkg.AdultOnly)
	require.NotContains(t, pkg.Amenities, "Adults Only")
}

func TestTransformTransatPackageRejectsBadDates(t *testing.T) {
	raw := json.RawMessage(`{
		"hotel": {"name": "Hotel", "city": "Cancun"},
		"totalPriceForGroup": 1000,
		"departureDate": "not-a-date",
		"returnDate": "2025-03-08"
	}`)

	_, err := TransformTransatPackage(raw)
	require.Error(t, err)
}

func TestExtractUniqueHotels(t *testing.T) {
	raw := []json.RawMessage{
		rawPackage("Zebra Resort", 1000),
		rawPackage("Alpha Resort", 2000),
		rawPackage("Zebra Resort", 3000),
	}
	packages := FilterByBudget(raw, 5000)

	hotels := ExtractUniqueHotels(packages)

	require.Equal(t, []string{"Alpha Resort", "Zebra Resort"}, hotels)
}
