package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventOccurrence is one concrete bookable instance of an event. End is
// optional for open-ended occurrences. Vacancies may go negative when the
// legacy oversell mode is enabled.
type EventOccurrence struct {
	Base
	Cancellable
	EventID   uuid.UUID  `db:"event_id"`
	Start     time.Time  `db:"start_at"`
	End       *time.Time `db:"end_at"`
	Vacancies int        `db:"vacancies"`
}
