package entity

import (
	"time"
)

// Winery is visible to tourists only after an admin approves it, which stamps
// AvailableSince. A nil AvailableSince means pending approval.
type Winery struct {
	Base
	Name           string     `db:"name"`
	Description    string     `db:"description"`
	Website        string     `db:"website"`
	Latitude       float64    `db:"latitude"`
	Longitude      float64    `db:"longitude"`
	AvailableSince *time.Time `db:"available_since"`
}

func (w *Winery) IsApproved() bool {
	return w.AvailableSince != nil
}
