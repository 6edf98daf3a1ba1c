package session

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestCountdownExpiresOnce(t *testing.T) {
	fired := 0
	cd := NewCountdown(3, func() { fired++ })

	cd.Tick()
	cd.Tick()
	if cd.Expired() {
		t.Fatal("expired early")
	}
	if got := cd.Remaining(); got != 1 {
		t.Fatalf("expected 1 second remaining, got %d", got)
	}

	cd.Tick()
	if !cd.Expired() {
		t.Fatal("expected expiry at zero")
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}

	// Ticks past zero change nothing.
	cd.Tick()
	cd.Tick()
	if fired != 1 {
		t.Errorf("callback fired again after expiry: %d", fired)
	}
	if got := cd.Remaining(); got != 0 {
		t.Errorf("remaining went below zero: %d", got)
	}
}

func TestCountdownStopSuppressesCallback(t *testing.T) {
	fired := false
	cd := NewCountdown(1, func() { fired = true })

	cd.Stop()
	cd.Tick()

	if fired {
		t.Error("callback fired after Stop")
	}
	if cd.Expired() {
		t.Error("stopped countdown must not expire")
	}
	if !cd.Stopped() {
		t.Error("Stopped should report true")
	}
}

func TestCountdownSingleTickDuration(t *testing.T) {
	fired := false
	cd := NewCountdown(1, func() { fired = true })

	cd.Tick()
	if !fired || !cd.Expired() {
		t.Errorf("one-second countdown should expire on first tick, fired=%v expired=%v", fired, cd.Expired())
	}
}

func TestCountdownNilCallback(t *testing.T) {
	cd := NewCountdown(1, nil)
	cd.Tick() // must not panic
	if !cd.Expired() {
		t.Error("expected expiry")
	}
}

func TestCountdownConcurrentTickAndStop(t *testing.T) {
	var fired atomic.Int32
	cd := NewCountdown(50, func() { fired.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				cd.Tick()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		cd.Stop()
	}()
	wg.Wait()

	// Whatever interleaving happened, the callback fired at most once and
	// remaining never went negative.
	if n := fired.Load(); n > 1 {
		t.Errorf("callback fired %d times, want at most 1", n)
	}
	if got := cd.Remaining(); got < 0 {
		t.Errorf("remaining went negative: %d", got)
	}
}
