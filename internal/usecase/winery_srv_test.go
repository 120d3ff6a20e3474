package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestApproveStampsAvailableSince(t *testing.T) {
	wineries := newFakeWineryRepo()
	service := NewWineryService(wineries, testLogger())

	wineryID := uuid.New()
	wineries.Create(context.Background(), wineryEntity(wineryID, nil))

	resp, err := service.Approve(context.Background(), wineryID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if resp.AvailableSince == nil {
		t.Fatal("available_since not set after approval")
	}
}

func TestApproveIdempotent(t *testing.T) {
	wineries := newFakeWineryRepo()
	service := NewWineryService(wineries, testLogger())

	since := time.Now().Add(-24 * time.Hour)
	wineryID := uuid.New()
	wineries.Create(context.Background(), wineryEntity(wineryID, &since))

	resp, err := service.Approve(context.Background(), wineryID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// The original approval timestamp survives a second approval.
	got, err := time.Parse(time.RFC3339, *resp.AvailableSince)
	if err != nil {
		t.Fatalf("parse available_since: %v", err)
	}
	if got.Unix() != since.Unix() {
		t.Errorf("available_since = %v, want original %v", got, since)
	}
}
