package entity

import (
	"github.com/google/uuid"
)

type Event struct {
	Base
	Cancellable
	WineryID    uuid.UUID `db:"winery_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       float64   `db:"price"` // per attendee
}
