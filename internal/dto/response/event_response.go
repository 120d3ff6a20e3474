package response

type OccurrenceResponse struct {
	ID                 string  `json:"id"`
	Start              string  `json:"start"`
	End                *string `json:"end,omitempty"`
	Vacancies          int     `json:"vacancies"`
	Cancelled          *string `json:"cancelled,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
}

type EventResponse struct {
	ID                 string               `json:"id"`
	WineryID           string               `json:"winery_id"`
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	Price              float64              `json:"price"`
	Rating             float64              `json:"rating"`
	Categories         []NamedResponse      `json:"categories"`
	Tags               []NamedResponse      `json:"tags"`
	Occurrences        []OccurrenceResponse `json:"occurrences,omitempty"`
	Cancelled          *string              `json:"cancelled,omitempty"`
	CancellationReason *string              `json:"cancellation_reason,omitempty"`
}

type RateResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type EventRatesResponse struct {
	Average float64        `json:"average"`
	Count   int            `json:"count"`
	Rates   []RateResponse `json:"rates"`
}
