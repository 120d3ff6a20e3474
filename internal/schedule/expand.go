// Package schedule expands recurrence specifications into the concrete
// calendar dates and time windows that become event occurrences.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

var (
	ErrEndBeforeStart  = errors.New("schedule: to_date is before from_date")
	ErrMissingWeekdays = errors.New("schedule: weekdays are required when to_date is set")
	ErrInvalidWeekday  = errors.New("schedule: weekday index out of range")
)

// Weekday follows the 0=Monday .. 6=Sunday convention used by the API.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// indexed by Weekday
var rruleWeekdays = [7]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// Expand returns every calendar date in [start, end] whose weekday belongs to
// weekdays, ascending. A nil end yields the single date start, and weekdays
// are ignored. A non-nil end with no weekdays is rejected rather than guessed
// as "all days" or "no days".
func Expand(start time.Time, end *time.Time, weekdays []Weekday) ([]time.Time, error) {
	if end == nil {
		return []time.Time{truncateToDate(start)}, nil
	}
	if end.Before(start) {
		return nil, ErrEndBeforeStart
	}
	if len(weekdays) == 0 {
		return nil, ErrMissingWeekdays
	}

	byweekday := make([]rrule.Weekday, len(weekdays))
	for i, w := range weekdays {
		if w < Monday || w > Sunday {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, w)
		}
		byweekday[i] = rruleWeekdays[w]
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   truncateToDate(start),
		Until:     truncateToDate(*end),
		Byweekday: byweekday,
	})
	if err != nil {
		return nil, fmt.Errorf("build recurrence rule: %w", err)
	}

	return rule.All(), nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
