package request

type CreateReservationRequest struct {
	OccurrenceID   string `json:"occurrence_id" validate:"required,uuid4"`
	AttendeeNumber int    `json:"attendee_number" validate:"required,min=1"`
	Observations   string `json:"observations" validate:"max=1000"`
}

type CreateRateRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}
