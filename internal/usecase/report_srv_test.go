package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/repository"

	"github.com/google/uuid"
)

func TestReservationsByMonthZeroFill(t *testing.T) {
	reports := &fakeReportRepo{
		byMonth: []repository.MonthCount{
			{Month: 10, Count: 2},
			{Month: 12, Count: 1},
		},
	}
	service := NewReportService(reports, testLogger())

	items, err := service.ReservationsByMonth(context.Background(), uuid.New(), repository.ReportWindow{})
	if err != nil {
		t.Fatalf("ReservationsByMonth: %v", err)
	}

	if len(items) != 12 {
		t.Fatalf("expected 12 months, got %d", len(items))
	}
	for i, item := range items {
		if item.Month != i+1 {
			t.Errorf("items[%d].Month = %d, want %d", i, item.Month, i+1)
		}
	}
	if items[9].Count != 2 {
		t.Errorf("October count = %d, want 2", items[9].Count)
	}
	if items[11].Count != 1 {
		t.Errorf("December count = %d, want 1", items[11].Count)
	}
	if items[0].Count != 0 {
		t.Errorf("January count = %d, want 0", items[0].Count)
	}
}

func TestAttendeeAgeGroups(t *testing.T) {
	now := time.Now()
	birthYear := func(age int) time.Time {
		return time.Date(now.Year()-age, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	reports := &fakeReportRepo{
		birthDates: []time.Time{
			birthYear(20), // young
			birthYear(34), // young, upper bound
			birthYear(35), // midage, lower bound
			birthYear(49), // midage, upper bound
			birthYear(50), // old, lower bound
			birthYear(72), // old
			birthYear(12), // under the young bound, not counted
		},
	}
	service := NewReportService(reports, testLogger())

	groups, err := service.AttendeeAgeGroups(context.Background(), uuid.New(), repository.ReportWindow{})
	if err != nil {
		t.Fatalf("AttendeeAgeGroups: %v", err)
	}

	want := []struct {
		group string
		count int
	}{
		{"young", 2},
		{"midage", 2},
		{"old", 2},
	}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %d", len(want), len(groups))
	}
	for i, w := range want {
		if groups[i].Group != w.group || groups[i].Count != w.count {
			t.Errorf("groups[%d] = %+v, want {%s %d}", i, groups[i], w.group, w.count)
		}
	}
}

func TestEarningsByEventPassthrough(t *testing.T) {
	reports := &fakeReportRepo{
		earnings: []repository.NameSum{
			{Name: "Grand tasting", Total: 3000},
			{Name: "Cellar tour", Total: 1200},
		},
	}
	service := NewReportService(reports, testLogger())

	items, err := service.EarningsByEvent(context.Background(), uuid.New(), repository.ReportWindow{})
	if err != nil {
		t.Fatalf("EarningsByEvent: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Grand tasting" || items[0].Earnings != 3000 {
		t.Errorf("items[0] = %+v, want Grand tasting / 3000", items[0])
	}
}

func TestReportBundleIncludesEveryView(t *testing.T) {
	reports := &fakeReportRepo{
		byEvent:  []repository.NameCount{{Name: "Cellar tour", Count: 3}},
		ratings:  []repository.NameAvg{{Name: "Cellar tour", Average: 4.5}},
		earnings: []repository.NameSum{{Name: "Cellar tour", Total: 900}},
	}
	service := NewReportService(reports, testLogger())

	bundle, err := service.Report(context.Background(), uuid.New(), repository.ReportWindow{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if len(bundle.ReservationsByEvent) != 1 {
		t.Errorf("reservations_by_event has %d items, want 1", len(bundle.ReservationsByEvent))
	}
	if len(bundle.ReservationsByMonth) != 12 {
		t.Errorf("reservations_by_month has %d items, want 12", len(bundle.ReservationsByMonth))
	}
	if len(bundle.AttendeesAgeGroups) != 3 {
		t.Errorf("attendees_age_groups has %d items, want 3", len(bundle.AttendeesAgeGroups))
	}
	if bundle.EventsByRating[0].AvgRating != 4.5 {
		t.Errorf("avg_rating = %v, want 4.5", bundle.EventsByRating[0].AvgRating)
	}
	if bundle.ReservationsByEarnings[0].Earnings != 900 {
		t.Errorf("earnings = %v, want 900", bundle.ReservationsByEarnings[0].Earnings)
	}
}
