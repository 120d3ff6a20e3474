package entity

import (
	"github.com/google/uuid"
)

type Reservation struct {
	BaseSimple
	Cancellable
	UserID         uuid.UUID `db:"user_id"`
	OccurrenceID   uuid.UUID `db:"occurrence_id"`
	AttendeeNumber int       `db:"attendee_number"`
	PaidAmount     float64   `db:"paid_amount"`
	Observations   *string   `db:"observations"`
}
