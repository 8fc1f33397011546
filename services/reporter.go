package services

import (
	"fmt"
	"sort"
	"strings"
)

// PrintMergeReport formats and prints the merge report to the terminal.
func PrintMergeReport(report *MergeReport) {
	thin := strings.Repeat("─", 50)

	fmt.Printf("\n MERGE SUMMARY\n%s\n", thin)
	fmt.Printf("  Hotels merged          : %d\n", report.TotalHotels)
	fmt.Printf("  Packages carried       : %d\n", report.TotalPackages)
	fmt.Printf("  Hotels with ratings    : %d/%d\n", report.WithRatings, report.TotalHotels)
	fmt.Printf("  Hotels with summaries  : %d/%d\n", report.WithSummaries, report.TotalHotels)
	fmt.Printf("  Average package price  : $%.2f\n", report.AveragePrice)
	fmt.Printf("  Price floor / ceiling  : $%.2f / $%.2f\n", report.MinPrice, report.MaxPrice)

	if report.CheapestHotel != nil {
		fmt.Printf("\n BEST PRICE\n%s\n", thin)
		fmt.Printf("  Hotel : %s\n", report.CheapestHotel.Name)
		fmt.Printf("  City  : %s\n", report.CheapestHotel.City)
		fmt.Printf("  From  : $%.2f\n", report.CheapestHotel.PriceRange.Min)
	}

	if len(report.HotelsByCity) > 0 {
		fmt.Printf("\n HOTELS PER CITY\n%s\n", thin)
		type cityCount struct {
			city  string
			count int
		}
		var cities []cityCount
		for city, cnt := range report.HotelsByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		sort.Slice(cities, func(i, j int) bool {
			return cities[i].count > cities[j].count
		})
		for _, cc := range cities {
			fmt.Printf("  %-30s %3d\n", cc.city+":", cc.count)
		}
	}

	if len(report.TopRated) > 0 {
		fmt.Printf("\n TOP %d RATED\n%s\n", len(report.TopRated), thin)
		for i, h := range report.TopRated {
			fmt.Printf("  %d. %-35s %.1f\n", i+1, truncate(h.Name, 35), *h.GoogleRating)
		}
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
