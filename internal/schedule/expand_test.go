package schedule

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandWeekdaysInRange(t *testing.T) {
	start := date(2019, time.August, 18) // a Sunday
	end := date(2019, time.August, 31)

	got, err := Expand(start, &end, []Weekday{Monday, Wednesday, Friday})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{
		date(2019, time.August, 19),
		date(2019, time.August, 21),
		date(2019, time.August, 23),
		date(2019, time.August, 26),
		date(2019, time.August, 28),
		date(2019, time.August, 30),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d dates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("date[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestExpandInclusiveEnd(t *testing.T) {
	start := date(2019, time.August, 26) // Monday
	end := date(2019, time.September, 2) // Monday, must be included

	got, err := Expand(start, &end, []Weekday{Monday})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d dates, want 2: %v", len(got), got)
	}
	if !got[1].Equal(end) {
		t.Errorf("last date = %v, want %v", got[1], end)
	}
}

func TestExpandProperties(t *testing.T) {
	start := date(2020, time.January, 1)
	end := date(2020, time.March, 31)
	weekdays := []Weekday{Tuesday, Saturday}

	got, err := Expand(start, &end, weekdays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected some dates")
	}

	member := map[time.Weekday]bool{time.Tuesday: true, time.Saturday: true}
	prev := time.Time{}
	for i, d := range got {
		if d.Before(start) || d.After(end) {
			t.Errorf("date[%d] = %v outside [%v, %v]", i, d, start, end)
		}
		if !member[d.Weekday()] {
			t.Errorf("date[%d] = %v has weekday %v", i, d, d.Weekday())
		}
		if i > 0 && !d.After(prev) {
			t.Errorf("dates not strictly ascending at %d: %v then %v", i, prev, d)
		}
		prev = d
	}
}

func TestExpandNilEndIgnoresWeekdays(t *testing.T) {
	start := date(2019, time.August, 28) // Wednesday

	for _, weekdays := range [][]Weekday{nil, {Monday}, {Monday, Sunday}} {
		got, err := Expand(start, nil, weekdays)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || !got[0].Equal(start) {
			t.Fatalf("got %v, want [%v]", got, start)
		}
	}
}

func TestExpandValidation(t *testing.T) {
	start := date(2019, time.August, 18)
	end := date(2019, time.August, 31)
	before := date(2019, time.August, 1)

	tests := []struct {
		name     string
		end      *time.Time
		weekdays []Weekday
		wantErr  error
	}{
		{"end before start", &before, []Weekday{Monday}, ErrEndBeforeStart},
		{"missing weekdays", &end, nil, ErrMissingWeekdays},
		{"empty weekdays", &end, []Weekday{}, ErrMissingWeekdays},
		{"weekday too big", &end, []Weekday{7}, ErrInvalidWeekday},
		{"weekday negative", &end, []Weekday{-1}, ErrInvalidWeekday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(start, tt.end, tt.weekdays)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSpecWindows(t *testing.T) {
	end := date(2019, time.September, 11)
	spec := Spec{
		FromDate:  date(2019, time.August, 28),
		ToDate:    &end,
		StartTime: TimeOfDay{Hour: 15, Minute: 30},
		EndTime:   TimeOfDay{Hour: 16, Minute: 30},
		Weekdays:  []Weekday{Tuesday, Wednesday, Thursday},
	}

	windows, err := spec.Windows()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Aug 28, 29, Sep 3, 4, 5, 10, 11
	if len(windows) != 7 {
		t.Fatalf("got %d windows, want 7: %v", len(windows), windows)
	}
	first := windows[0]
	if first.Start != time.Date(2019, time.August, 28, 15, 30, 0, 0, time.UTC) {
		t.Errorf("first start = %v", first.Start)
	}
	if first.End != time.Date(2019, time.August, 28, 16, 30, 0, 0, time.UTC) {
		t.Errorf("first end = %v", first.End)
	}
}

func TestSpecWindowsRejectsInvertedTimes(t *testing.T) {
	spec := Spec{
		FromDate:  date(2019, time.August, 28),
		StartTime: TimeOfDay{Hour: 16},
		EndTime:   TimeOfDay{Hour: 15},
	}
	if _, err := spec.Windows(); !errors.Is(err, ErrEndTimeBeforeStartTime) {
		t.Fatalf("got %v, want ErrEndTimeBeforeStartTime", err)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("08:30:15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (TimeOfDay{Hour: 8, Minute: 30, Second: 15}) {
		t.Fatalf("got %+v", got)
	}

	if _, err := ParseTimeOfDay("25:00:00"); err == nil {
		t.Fatal("expected error for invalid hour")
	}
	if _, err := ParseTimeOfDay("noon"); err == nil {
		t.Fatal("expected error for junk input")
	}
}
