package response

type ReservationResponse struct {
	ID                 string  `json:"id"`
	OccurrenceID       string  `json:"occurrence_id"`
	EventID            string  `json:"event_id"`
	EventName          string  `json:"event_name"`
	Start              string  `json:"start"`
	End                *string `json:"end,omitempty"`
	AttendeeNumber     int     `json:"attendee_number"`
	PaidAmount         float64 `json:"paid_amount"`
	Observations       *string `json:"observations,omitempty"`
	Cancelled          *string `json:"cancelled,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CreatedAt          string  `json:"created_at"`
}
