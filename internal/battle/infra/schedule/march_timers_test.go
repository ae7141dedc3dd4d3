package schedule

import (
	"context"
	"testing"
	"time"

	"Ironmarch/internal/battle/entity"
)

func collectFires() (*MarchTimers, chan entity.ArmyID) {
	fired := make(chan entity.ArmyID, 8)
	timers := NewMarchTimers(func(_ context.Context, id entity.ArmyID) {
		fired <- id
	})
	return timers, fired
}

func TestScheduleFiresOnce(t *testing.T) {
	timers, fired := collectFires()
	defer timers.Stop()

	timers.Schedule(1, time.Now())

	select {
	case id := <-fired:
		if id != 1 {
			t.Fatalf("fired for army %d, want 1", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}

	select {
	case id := <-fired:
		t.Fatalf("unexpected second fire for army %d", id)
	case <-time.After(150 * time.Millisecond):
	}
	if timers.Pending(1) {
		t.Error("fired timer should no longer be pending")
	}
}

func TestRescheduleReplacesPendingTimer(t *testing.T) {
	timers, fired := collectFires()
	defer timers.Stop()

	timers.Schedule(1, time.Now().Add(time.Hour))
	timers.Schedule(1, time.Now())

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("replacement timer did not fire")
	}

	select {
	case <-fired:
		t.Fatal("replaced timer fired as well")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestCancelStopsTimer(t *testing.T) {
	timers, fired := collectFires()
	defer timers.Stop()

	timers.Schedule(1, time.Now().Add(50*time.Millisecond))
	timers.Cancel(1)

	select {
	case <-fired:
		t.Fatal("canceled timer fired")
	case <-time.After(250 * time.Millisecond):
	}
	if timers.Pending(1) {
		t.Error("canceled timer should not be pending")
	}
}

func TestStopCancelsEverything(t *testing.T) {
	timers, fired := collectFires()

	timers.Schedule(1, time.Now().Add(50*time.Millisecond))
	timers.Schedule(2, time.Now().Add(50*time.Millisecond))
	timers.Stop()

	select {
	case id := <-fired:
		t.Fatalf("timer %d fired after Stop", id)
	case <-time.After(250 * time.Millisecond):
	}

	// Scheduling after Stop is a no-op.
	timers.Schedule(3, time.Now())
	select {
	case <-fired:
		t.Fatal("timer armed after Stop fired")
	case <-time.After(150 * time.Millisecond):
	}
}
