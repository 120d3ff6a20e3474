package response

type WineryResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Website        string  `json:"website,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AvailableSince *string `json:"available_since,omitempty"`
}

type WineLineResponse struct {
	ID          string `json:"id"`
	WineryID    string `json:"winery_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type WineResponse struct {
	ID          string `json:"id"`
	WineLineID  string `json:"wine_line_id"`
	VarietalID  string `json:"varietal_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
