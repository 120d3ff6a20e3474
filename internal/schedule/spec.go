package schedule

import (
	"errors"
	"fmt"
	"time"
)

var ErrEndTimeBeforeStartTime = errors.New("schedule: end_time is not after start_time")

// TimeOfDay is a wall-clock time within a day.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "15:04:05" and, for convenience, "15:04".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("schedule: invalid time of day %q", value)
}

// On anchors the clock time to the given date, in the date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, t.Second, 0, date.Location())
}

func (t TimeOfDay) before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	if t.Minute != other.Minute {
		return t.Minute < other.Minute
	}
	return t.Second < other.Second
}

// Spec is one recurrence rule of a create-event request. It is input only and
// never persisted.
type Spec struct {
	FromDate  time.Time
	ToDate    *time.Time
	StartTime TimeOfDay
	EndTime   TimeOfDay
	Weekdays  []Weekday
}

// Window is a concrete occurrence time window produced from a Spec.
type Window struct {
	Start time.Time
	End   time.Time
}

// Windows expands the spec into occurrence windows, one per matching date.
// Validation failures surface before any window is produced, so a multi-spec
// request can be checked in full before anything is written.
func (s Spec) Windows() ([]Window, error) {
	if !s.StartTime.before(s.EndTime) {
		return nil, ErrEndTimeBeforeStartTime
	}

	dates, err := Expand(s.FromDate, s.ToDate, s.Weekdays)
	if err != nil {
		return nil, err
	}

	windows := make([]Window, len(dates))
	for i, date := range dates {
		windows[i] = Window{
			Start: s.StartTime.On(date),
			End:   s.EndTime.On(date),
		}
	}
	return windows, nil
}
