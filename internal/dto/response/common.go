package response

type NamedResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PaginatedResponse struct {
	Items      any `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}
