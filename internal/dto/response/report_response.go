package response

type CountItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthItem struct {
	Month int `json:"month"`
	Count int `json:"count"`
}

type LanguageItem struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

type CountryItem struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// AgeGroupItem buckets reservations by attendee age. Groups are always
// emitted in young, midage, old order, zero counts included.
type AgeGroupItem struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

type RatingItem struct {
	Name      string  `json:"name"`
	AvgRating float64 `json:"avg_rating"`
}

type EarningsItem struct {
	Name     string  `json:"name"`
	Earnings float64 `json:"earnings"`
}

// ReportBundle is the full winery dashboard in one payload.
type ReportBundle struct {
	ReservationsByEvent    []CountItem    `json:"reservations_by_event"`
	ReservationsByMonth    []MonthItem    `json:"reservations_by_month"`
	AttendeesLanguages     []LanguageItem `json:"attendees_languages"`
	AttendeesCountries     []CountryItem  `json:"attendees_countries"`
	AttendeesAgeGroups     []AgeGroupItem `json:"attendees_age_groups"`
	EventsByRating         []RatingItem   `json:"events_by_rating"`
	ReservationsByEarnings []EarningsItem `json:"reservations_by_earnings"`
}
