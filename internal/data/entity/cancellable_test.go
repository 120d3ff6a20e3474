package entity

import (
	"testing"
	"time"
)

func TestCancelTransition(t *testing.T) {
	var c Cancellable
	if c.IsCancelled() {
		t.Fatal("expected active state before cancel")
	}

	now := time.Date(2020, 10, 31, 20, 0, 0, 0, time.UTC)
	if !c.Cancel("bad weather", now) {
		t.Fatal("expected first cancel to change state")
	}
	if !c.IsCancelled() {
		t.Fatal("expected cancelled state")
	}
	if c.Cancelled == nil || !c.Cancelled.Equal(now) {
		t.Fatalf("unexpected cancellation timestamp %v", c.Cancelled)
	}
	if c.CancellationReason == nil || *c.CancellationReason != "bad weather" {
		t.Fatalf("unexpected reason %v", c.CancellationReason)
	}
}

func TestCancelIsTerminal(t *testing.T) {
	var c Cancellable
	first := time.Date(2020, 10, 31, 20, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	c.Cancel("bad weather", first)
	if c.Cancel("changed my mind", later) {
		t.Fatal("expected second cancel to be a no-op")
	}
	if !c.Cancelled.Equal(first) {
		t.Fatalf("timestamp overwritten: %v", c.Cancelled)
	}
	if *c.CancellationReason != "bad weather" {
		t.Fatalf("reason overwritten: %q", *c.CancellationReason)
	}
}
