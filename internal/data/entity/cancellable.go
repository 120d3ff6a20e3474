package entity

import (
	"time"
)

// Cancellable is embedded by every entity that supports the active->cancelled
// transition. A nil Cancelled timestamp means active. The transition is
// terminal: once cancelled, further Cancel calls do not touch the record.
type Cancellable struct {
	Cancelled          *time.Time `db:"cancelled"`
	CancellationReason *string    `db:"cancellation_reason"`
}

func (c *Cancellable) IsCancelled() bool {
	return c.Cancelled != nil
}

// Cancel records the transition. It reports whether the state changed, so
// callers can decide between writing the row and answering idempotently.
func (c *Cancellable) Cancel(reason string, now time.Time) bool {
	if c.IsCancelled() {
		return false
	}
	c.Cancelled = &now
	c.CancellationReason = &reason
	return true
}
