package domain

import (
	"errors"
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)

	if !clock.Now().Equal(start) {
		t.Fatalf("expected %s, got %s", start, clock.Now())
	}

	if err := clock.Advance(time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !clock.Now().Equal(start.Add(time.Hour)) {
		t.Fatalf("expected clock to advance, got %s", clock.Now())
	}

	if err := clock.Set(start); !errors.Is(err, ErrClockMovedBackwards) {
		t.Fatalf("expected ErrClockMovedBackwards, got %v", err)
	}
	if err := clock.Advance(-time.Second); !errors.Is(err, ErrClockMovedBackwards) {
		t.Fatalf("expected ErrClockMovedBackwards, got %v", err)
	}
	if !clock.Now().Equal(start.Add(time.Hour)) {
		t.Fatal("rejected move changed the clock")
	}

	if err := clock.Set(start.Add(time.Hour)); err != nil {
		t.Fatalf("setting the same instant should succeed: %v", err)
	}
}
