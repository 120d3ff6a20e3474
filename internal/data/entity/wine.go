package entity

import (
	"github.com/google/uuid"
)

// WineLine groups the wines of a winery into a product line.
type WineLine struct {
	Base
	WineryID    uuid.UUID `db:"winery_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
}

type Wine struct {
	Base
	WineLineID  uuid.UUID `db:"wine_line_id"`
	VarietalID  uuid.UUID `db:"varietal_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
}
