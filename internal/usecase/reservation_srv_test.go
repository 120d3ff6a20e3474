package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/request"

	"github.com/google/uuid"
)

type reservationFixture struct {
	service      *ReservationService
	reservations *fakeReservationRepo
	occStore     *fakeOccurrenceRepo
	events       *fakeEventRepo
	eventID      uuid.UUID
	occurrenceID uuid.UUID
}

func newReservationFixture(t *testing.T, allowOversell bool, price float64, vacancies int) *reservationFixture {
	t.Helper()

	occStore := newFakeOccurrenceRepo()
	events := newFakeEventRepo(occStore)
	reservations := newFakeReservationRepo(occStore)

	config := testConfig()
	config.Reservation.AllowOversell = allowOversell
	service := NewReservationService(reservations, occStore, events, config, testLogger())

	now := time.Now()
	event := &entity.Event{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		WineryID: uuid.New(),
		Name:     "Cellar tour",
		Price:    price,
	}
	events.events[event.ID] = event

	occ := &entity.EventOccurrence{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		EventID:   event.ID,
		Start:     now.Add(48 * time.Hour),
		Vacancies: vacancies,
	}
	occStore.occurrences[occ.ID] = occ

	return &reservationFixture{
		service:      service,
		reservations: reservations,
		occStore:     occStore,
		events:       events,
		eventID:      event.ID,
		occurrenceID: occ.ID,
	}
}

func TestReserveDecrementsVacanciesAndPrices(t *testing.T) {
	f := newReservationFixture(t, false, 1000, 10)

	resp, err := f.service.Reserve(context.Background(), uuid.New(), &request.CreateReservationRequest{
		OccurrenceID:   f.occurrenceID.String(),
		AttendeeNumber: 3,
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if resp.PaidAmount != 3000 {
		t.Errorf("paid amount = %v, want 3000", resp.PaidAmount)
	}
	if got := f.occStore.occurrences[f.occurrenceID].Vacancies; got != 7 {
		t.Errorf("vacancies after reserve = %d, want 7", got)
	}
}

func TestReserveRejectsWhenFull(t *testing.T) {
	f := newReservationFixture(t, false, 500, 2)

	_, err := f.service.Reserve(context.Background(), uuid.New(), &request.CreateReservationRequest{
		OccurrenceID:   f.occurrenceID.String(),
		AttendeeNumber: 3,
	})
	if !errors.Is(err, repository.ErrNoVacancy) {
		t.Fatalf("Reserve over capacity = %v, want ErrNoVacancy", err)
	}

	if got := f.occStore.occurrences[f.occurrenceID].Vacancies; got != 2 {
		t.Errorf("vacancies after rejected reserve = %d, want 2 untouched", got)
	}
	if len(f.reservations.reservations) != 0 {
		t.Errorf("no reservation should be stored, got %d", len(f.reservations.reservations))
	}
}

func TestReserveOversellAllowed(t *testing.T) {
	f := newReservationFixture(t, true, 500, 2)

	_, err := f.service.Reserve(context.Background(), uuid.New(), &request.CreateReservationRequest{
		OccurrenceID:   f.occurrenceID.String(),
		AttendeeNumber: 5,
	})
	if err != nil {
		t.Fatalf("Reserve with oversell: %v", err)
	}

	if got := f.occStore.occurrences[f.occurrenceID].Vacancies; got != -3 {
		t.Errorf("vacancies = %d, want -3", got)
	}
}

func TestReserveCancelledOccurrence(t *testing.T) {
	f := newReservationFixture(t, false, 500, 5)

	now := time.Now()
	f.occStore.Cancel(context.Background(), f.occurrenceID, "Weather", now)

	_, err := f.service.Reserve(context.Background(), uuid.New(), &request.CreateReservationRequest{
		OccurrenceID:   f.occurrenceID.String(),
		AttendeeNumber: 1,
	})
	if !errors.Is(err, repository.ErrCancelled) {
		t.Fatalf("Reserve on cancelled occurrence = %v, want ErrCancelled", err)
	}
}

func TestReserveCancelledEvent(t *testing.T) {
	f := newReservationFixture(t, false, 500, 5)

	now := time.Now()
	f.events.Cancel(context.Background(), f.eventID, "Closed", now)

	_, err := f.service.Reserve(context.Background(), uuid.New(), &request.CreateReservationRequest{
		OccurrenceID:   f.occurrenceID.String(),
		AttendeeNumber: 1,
	})
	if !errors.Is(err, repository.ErrCancelled) {
		t.Fatalf("Reserve on cancelled event = %v, want ErrCancelled", err)
	}
}

func TestCancelReservationIdempotent(t *testing.T) {
	f := newReservationFixture(t, false, 500, 5)
	userID := uuid.New()

	resp, err := f.service.Reserve(context.Background(), userID, &request.CreateReservationRequest{
		OccurrenceID:   f.occurrenceID.String(),
		AttendeeNumber: 2,
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	reservationID := uuid.MustParse(resp.ID)

	if _, err := f.service.Cancel(context.Background(), userID, reservationID, "Change of plans"); err != nil {
		t.Fatalf("first Cancel: %v", err)
	}

	second, err := f.service.Cancel(context.Background(), userID, reservationID, "Another reason")
	if err != nil {
		t.Fatalf("second Cancel: %v", err)
	}
	if second.CancellationReason == nil || *second.CancellationReason != "Change of plans" {
		t.Errorf("second cancel reason = %v, want original kept", second.CancellationReason)
	}
}

func TestCancelReservationForeignUser(t *testing.T) {
	f := newReservationFixture(t, false, 500, 5)

	resp, err := f.service.Reserve(context.Background(), uuid.New(), &request.CreateReservationRequest{
		OccurrenceID:   f.occurrenceID.String(),
		AttendeeNumber: 1,
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	_, err = f.service.Cancel(context.Background(), uuid.New(), uuid.MustParse(resp.ID), "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Cancel by other user = %v, want ErrForbidden", err)
	}
}

func TestCancelReservationForWinery(t *testing.T) {
	f := newReservationFixture(t, false, 500, 10)

	resp, err := f.service.Reserve(context.Background(), uuid.New(), &request.CreateReservationRequest{
		OccurrenceID:   f.occurrenceID.String(),
		AttendeeNumber: 2,
	})
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	reservationID, err := uuid.Parse(resp.ID)
	if err != nil {
		t.Fatalf("parse reservation id: %v", err)
	}
	wineryID := f.events.events[f.eventID].WineryID

	cancelled, err := f.service.CancelForWinery(context.Background(), wineryID, reservationID, "Bad weather")
	if err != nil {
		t.Fatalf("CancelForWinery: %v", err)
	}
	if cancelled.Cancelled == nil {
		t.Fatal("reservation not marked cancelled")
	}
	if cancelled.CancellationReason == nil || *cancelled.CancellationReason != "Bad weather" {
		t.Errorf("cancellation reason = %v, want Bad weather", cancelled.CancellationReason)
	}

	_, err = f.service.CancelForWinery(context.Background(), uuid.New(), reservationID, "")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("CancelForWinery foreign winery = %v, want ErrForbidden", err)
	}
}
