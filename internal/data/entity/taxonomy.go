package entity

import (
	"github.com/google/uuid"
)

// Reference tables: plain named lookups shared across the domain.

type Country struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type Language struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type Gender struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type Varietal struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type EventCategory struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

type Tag struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}
