package models

// PriceRange holds price statistics over one hotel's packages.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// HotelData is the merge of one hotel's packages with its scraped rating.
type HotelData struct {
	Name                string         `json:"name"`
	City                string         `json:"city"`
	Stars               *int           `json:"stars"`
	GoogleRating        *float64       `json:"google_rating"`
	ReviewCount         *int           `json:"review_count"`
	AirTransatURL       *string        `json:"air_transat_url,omitempty"`
	GoogleMapsURL       string         `json:"google_maps_url"`
	Drinks24h           bool           `json:"drinks24h"`
	Snacks24h           bool           `json:"snacks24h"`
	AdultOnly           *int           `json:"adult_only"`
	NumberOfRestaurants *int           `json:"number_of_restaurants,omitempty"`
	SpaAvailable        any            `json:"spa_available,omitempty"`
	MealPlanCode        *string        `json:"meal_plan_code,omitempty"`
	MealPlanLabel       *string        `json:"meal_plan_label,omitempty"`
	ThumbnailURL        *string        `json:"thumbnail_url,omitempty"`
	DepartureDate       *string        `json:"departure_date"`
	ReturnDate          *string        `json:"return_date"`
	Source              string         `json:"source"`
	PriceRange          PriceRange     `json:"price_range"`
	Packages            []HotelPackage `json:"packages"`
	ReviewSummary       *ReviewSummary `json:"review_summary,omitempty"`
}

// WebPackage is one package reshaped for the viewer.
type WebPackage struct {
	Departure           string  `json:"departure"`
	Return              string  `json:"return"`
	DurationDays        int     `json:"duration_days"`
	RoomType            string  `json:"room_type"`
	MealPlanCode        *string `json:"meal_plan_code,omitempty"`
	MealPlanLabel       *string `json:"meal_plan_label,omitempty"`
	NumberOfRestaurants *int    `json:"number_of_restaurants,omitempty"`
	SpaAvailable        any     `json:"spa_available,omitempty"`
	ThumbnailURL        *string `json:"thumbnail_url,omitempty"`
	Price               float64 `json:"price"`
	URL                 *string `json:"url,omitempty"`
	Drinks24h           bool    `json:"drinks24h"`
	Snacks24h           bool    `json:"snacks24h"`
}

// WebHotel is the viewer-facing projection of HotelData with a stable id.
type WebHotel struct {
	ID                  string         `json:"id"` // hotel_000, hotel_001, ...
	Name                string         `json:"name"`
	City                string         `json:"city"`
	Stars               *int           `json:"stars"`
	GoogleRating        *float64       `json:"google_rating"`
	ReviewCount         *int           `json:"review_count"`
	AirTransatURL       *string        `json:"air_transat_url,omitempty"`
	GoogleMapsURL       string         `json:"google_maps_url"`
	Drinks24h           bool           `json:"drinks24h"`
	Snacks24h           bool           `json:"snacks24h"`
	AdultOnly           *int           `json:"adult_only"`
	NumberOfRestaurants *int           `json:"number_of_restaurants,omitempty"`
	SpaAvailable        any            `json:"spa_available,omitempty"`
	MealPlanCode        *string        `json:"meal_plan_code,omitempty"`
	MealPlanLabel       *string        `json:"meal_plan_label,omitempty"`
	ThumbnailURL        *string        `json:"thumbnail_url,omitempty"`
	DepartureDate       *string        `json:"departure_date"`
	ReturnDate          *string        `json:"return_date"`
	PriceRange          PriceRange     `json:"price_range"`
	PackageCount        int            `json:"package_count"`
	Packages            []WebPackage   `json:"packages"`
	ReviewSummary       *ReviewSummary `json:"review_summary,omitempty"`
}

// WebMetadata describes one generation run.
type WebMetadata struct {
	Destination string `json:"destination"`
	Source      string `json:"source"`
	GeneratedAt string `json:"generated_at"`
	Budget      int    `json:"budget"`
	TotalHotels int    `json:"total_hotels"`
}

// WebOutput is the complete payload consumed by the web viewer.
type WebOutput struct {
	Metadata WebMetadata `json:"metadata"`
	Hotels   []WebHotel  `json:"hotels"`
}
