package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/dto/request"

	"github.com/google/uuid"
)

func newRateFixture() (*RateService, *fakeRateRepo, uuid.UUID) {
	occStore := newFakeOccurrenceRepo()
	events := newFakeEventRepo(occStore)
	rates := &fakeRateRepo{}
	service := NewRateService(rates, events, testLogger())

	now := time.Now()
	event := &entity.Event{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		WineryID: uuid.New(),
		Name:     "Grand tasting",
	}
	events.events[event.ID] = event

	return service, rates, event.ID
}

func TestRateUnknownEvent(t *testing.T) {
	service, _, _ := newRateFixture()

	_, err := service.Rate(context.Background(), uuid.New(), uuid.New(), &request.CreateRateRequest{Rating: 4})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Rate unknown event = %v, want ErrNotFound", err)
	}
}

func TestDuplicateRatesCountTowardAverage(t *testing.T) {
	service, _, eventID := newRateFixture()
	userID := uuid.New()

	// The same user may rate an event more than once.
	for _, rating := range []int{5, 4} {
		if _, err := service.Rate(context.Background(), userID, eventID, &request.CreateRateRequest{Rating: rating}); err != nil {
			t.Fatalf("Rate: %v", err)
		}
	}

	resp, err := service.ListByEvent(context.Background(), eventID, 1, 10)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	if resp.Average != 4.5 {
		t.Errorf("average = %v, want 4.5", resp.Average)
	}
}
