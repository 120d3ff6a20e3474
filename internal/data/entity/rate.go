package entity

import (
	"github.com/google/uuid"
)

type Rate struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	EventID uuid.UUID `db:"event_id"`
	Rating  int       `db:"rating"` // 1-5
	Comment *string   `db:"comment"`
}
