package models

// Review is one individual guest review scraped from the ratings site.
type Review struct {
	Text         string  `json:"text"`
	Rating       int     `json:"rating"` // 1..5, defaulted to 3 when unparseable
	Date         string  `json:"date"`   // ISO date or relative phrase ("2 weeks ago")
	ReviewerName *string `json:"reviewer_name"`
}

// Key returns the identity used for deduplication. Two reviews with the same
// key are duplicates regardless of scrape order.
func (r Review) Key() string {
	name := ""
	if r.ReviewerName != nil {
		name = *r.ReviewerName
	}
	return r.Text + "\x00" + string(rune('0'+r.Rating)) + "\x00" + name
}

// ReviewSummary is the AI-generated digest of a hotel's reviews.
type ReviewSummary struct {
	GoodPoints          []string `json:"good_points"`
	BadPoints           []string `json:"bad_points"`
	UglyPoints          []string `json:"ugly_points"`
	OverallSummary      string   `json:"overall_summary"`
	ReviewCountAnalyzed int      `json:"review_count_analyzed"`
}

// HotelRating is one hotel's aggregate third-party rating. Absent scraped
// data is represented by nil fields; the record itself is never omitted.
type HotelRating struct {
	HotelName     string         `json:"hotel_name"`
	Rating        *float64       `json:"rating"`
	ReviewCount   *int           `json:"review_count"`
	Reviews       []Review       `json:"reviews"`
	ReviewSummary *ReviewSummary `json:"review_summary,omitempty"`
}

// NewEmptyRating returns the placeholder record for a hotel whose scrape
// produced no data.
func NewEmptyRating(hotelName string) HotelRating {
	return HotelRating{HotelName: hotelName, Reviews: []Review{}}
}
