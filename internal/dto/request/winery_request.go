package request

type UpdateWineryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"max=1000"`
	Website     string  `json:"website" validate:"omitempty,url"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
}

type CreateWineLineRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type CreateWineRequest struct {
	WineLineID  string `json:"wine_line_id" validate:"required,uuid4"`
	VarietalID  string `json:"varietal_id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// CreateNamedRequest covers the flat reference tables.
type CreateNamedRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
