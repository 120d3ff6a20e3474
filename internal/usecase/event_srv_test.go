package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/schedule"

	"github.com/google/uuid"
)

func newEventService() (*EventService, *fakeEventRepo, *fakeOccurrenceRepo, *fakeWineryRepo) {
	occStore := newFakeOccurrenceRepo()
	events := newFakeEventRepo(occStore)
	wineries := newFakeWineryRepo()
	service := NewEventService(events, occStore, &fakeRateRepo{}, wineries, testConfig(), testLogger())
	return service, events, occStore, wineries
}

func TestCreateEventGeneratesOccurrences(t *testing.T) {
	service, _, occStore, _ := newEventService()
	wineryID := uuid.New()

	// Mon/Wed/Fri between Aug 18 and Aug 31 2019: 19, 21, 23, 26, 28, 30.
	resp, err := service.Create(context.Background(), wineryID, &request.CreateEventRequest{
		Name:      "Sunset tasting",
		Price:     1500,
		Vacancies: 20,
		Schedules: []request.ScheduleRequest{{
			FromDate:  "2019-08-18",
			ToDate:    "2019-08-31",
			StartTime: "18:30",
			EndTime:   "20:00",
			Weekdays:  []int{0, 2, 4},
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(occStore.occurrences) != 6 {
		t.Fatalf("expected 6 occurrences, got %d", len(occStore.occurrences))
	}

	wantDays := map[int]bool{19: true, 21: true, 23: true, 26: true, 28: true, 30: true}
	for _, occ := range occStore.occurrences {
		if !wantDays[occ.Start.Day()] {
			t.Errorf("unexpected occurrence day %d", occ.Start.Day())
		}
		if occ.Start.Hour() != 18 || occ.Start.Minute() != 30 {
			t.Errorf("occurrence start time = %02d:%02d, want 18:30", occ.Start.Hour(), occ.Start.Minute())
		}
		if occ.End == nil || occ.End.Hour() != 20 {
			t.Errorf("occurrence end not set to 20:00")
		}
		if occ.Vacancies != 20 {
			t.Errorf("occurrence vacancies = %d, want 20", occ.Vacancies)
		}
	}

	if resp.WineryID != wineryID.String() {
		t.Errorf("response winery = %s, want %s", resp.WineryID, wineryID)
	}
}

func TestCreateEventSingleDate(t *testing.T) {
	service, _, occStore, _ := newEventService()

	// Without to_date the weekday list is ignored and one occurrence is
	// created on from_date.
	_, err := service.Create(context.Background(), uuid.New(), &request.CreateEventRequest{
		Name:      "Harvest dinner",
		Price:     900,
		Vacancies: 12,
		Schedules: []request.ScheduleRequest{{
			FromDate:  "2019-08-20",
			StartTime: "21:00",
			EndTime:   "23:00",
			Weekdays:  []int{5, 6},
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(occStore.occurrences) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occStore.occurrences))
	}
	for _, occ := range occStore.occurrences {
		if occ.Start.Day() != 20 || occ.Start.Month() != time.August {
			t.Errorf("occurrence on %v, want Aug 20", occ.Start)
		}
	}
}

func TestCreateEventInvalidSchedules(t *testing.T) {
	tests := []struct {
		name     string
		schedule request.ScheduleRequest
		wantErr  error
	}{
		{
			name: "inverted date range",
			schedule: request.ScheduleRequest{
				FromDate:  "2019-08-31",
				ToDate:    "2019-08-18",
				StartTime: "18:00",
				EndTime:   "20:00",
				Weekdays:  []int{0},
			},
			wantErr: schedule.ErrEndBeforeStart,
		},
		{
			name: "missing weekdays with range",
			schedule: request.ScheduleRequest{
				FromDate:  "2019-08-18",
				ToDate:    "2019-08-31",
				StartTime: "18:00",
				EndTime:   "20:00",
			},
			wantErr: schedule.ErrMissingWeekdays,
		},
		{
			name: "end time before start time",
			schedule: request.ScheduleRequest{
				FromDate:  "2019-08-18",
				ToDate:    "2019-08-31",
				StartTime: "20:00",
				EndTime:   "18:00",
				Weekdays:  []int{0},
			},
			wantErr: schedule.ErrEndTimeBeforeStartTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, occStore, _ := newEventService()

			_, err := service.Create(context.Background(), uuid.New(), &request.CreateEventRequest{
				Name:      "Broken",
				Vacancies: 5,
				Schedules: []request.ScheduleRequest{tt.schedule},
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create error = %v, want %v", err, tt.wantErr)
			}
			if len(occStore.occurrences) != 0 {
				t.Errorf("no occurrences should be created on failure, got %d", len(occStore.occurrences))
			}
		})
	}
}

func TestCancelEventIdempotent(t *testing.T) {
	service, events, _, _ := newEventService()
	wineryID := uuid.New()

	resp, err := service.Create(context.Background(), wineryID, &request.CreateEventRequest{
		Name:      "Vertical tasting",
		Vacancies: 8,
		Schedules: []request.ScheduleRequest{{
			FromDate:  "2019-09-01",
			StartTime: "18:00",
			EndTime:   "19:00",
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	eventID := uuid.MustParse(resp.ID)

	first, err := service.Cancel(context.Background(), wineryID, eventID, "No more stock")
	if err != nil {
		t.Fatalf("first Cancel: %v", err)
	}
	if first.Cancelled == nil || first.CancellationReason == nil || *first.CancellationReason != "No more stock" {
		t.Fatalf("first cancel state = %+v", first)
	}

	// The second cancel succeeds but keeps the original reason.
	second, err := service.Cancel(context.Background(), wineryID, eventID, "Different reason")
	if err != nil {
		t.Fatalf("second Cancel: %v", err)
	}
	if second.CancellationReason == nil || *second.CancellationReason != "No more stock" {
		t.Errorf("second cancel reason = %v, want original kept", second.CancellationReason)
	}

	stored := events.events[eventID]
	if stored.CancellationReason == nil || *stored.CancellationReason != "No more stock" {
		t.Errorf("stored reason = %v, want original kept", stored.CancellationReason)
	}
}

func TestCancelEventDefaultReason(t *testing.T) {
	service, events, _, _ := newEventService()
	wineryID := uuid.New()

	resp, err := service.Create(context.Background(), wineryID, &request.CreateEventRequest{
		Name:      "Barrel visit",
		Vacancies: 4,
		Schedules: []request.ScheduleRequest{{
			FromDate:  "2019-09-02",
			StartTime: "10:00",
			EndTime:   "11:00",
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	eventID := uuid.MustParse(resp.ID)

	if _, err := service.Cancel(context.Background(), wineryID, eventID, ""); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	stored := events.events[eventID]
	if stored.CancellationReason == nil || *stored.CancellationReason != "Cancelled by issuer" {
		t.Errorf("reason = %v, want configured default", stored.CancellationReason)
	}
}

func TestCancelEventForeignWinery(t *testing.T) {
	service, _, _, _ := newEventService()
	owner := uuid.New()

	resp, err := service.Create(context.Background(), owner, &request.CreateEventRequest{
		Name:      "Private tour",
		Vacancies: 2,
		Schedules: []request.ScheduleRequest{{
			FromDate:  "2019-09-03",
			StartTime: "12:00",
			EndTime:   "13:00",
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = service.Cancel(context.Background(), uuid.New(), uuid.MustParse(resp.ID), "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Cancel by foreign winery = %v, want ErrForbidden", err)
	}
}

func TestGetHidesUnapprovedWinery(t *testing.T) {
	service, _, _, wineries := newEventService()
	wineryID := uuid.New()

	resp, err := service.Create(context.Background(), wineryID, &request.CreateEventRequest{
		Name:      "Preview tasting",
		Vacancies: 10,
		Schedules: []request.ScheduleRequest{{
			FromDate:  "2019-09-04",
			StartTime: "17:00",
			EndTime:   "18:00",
		}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	eventID := uuid.MustParse(resp.ID)

	// Winery not registered at all: hidden.
	if _, err := service.Get(context.Background(), eventID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get with unknown winery = %v, want ErrNotFound", err)
	}

	// Pending winery: still hidden.
	wineries.Create(context.Background(), wineryEntity(wineryID, nil))
	if _, err := service.Get(context.Background(), eventID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get with pending winery = %v, want ErrNotFound", err)
	}

	// Approved winery: visible.
	now := time.Now()
	wineries.Approve(context.Background(), wineryID, now)
	if _, err := service.Get(context.Background(), eventID); err != nil {
		t.Fatalf("Get with approved winery: %v", err)
	}
}
