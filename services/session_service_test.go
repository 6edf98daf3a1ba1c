package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testSessionService(t *testing.T) (*SessionService, *SessionStore) {
	t.Helper()
	store, _ := testStore(t)
	hub := NewHub(logrus.New())
	go hub.Run()
	return NewSessionService(nil, store, nil, hub, logrus.New()), store
}

// A timer tick landing between an answer's read and write used to rewind the
// stored attempt. The ticker must never write session state the answer path
// owns.
func TestTimerTickDoesNotClobberStoredAnswer(t *testing.T) {
	svc, store := testSessionService(t)
	ctx := context.Background()

	sess := testSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	svc.startCountdown(sess.ID, sess.TimeLimit)
	defer svc.stopCountdown(sess.ID)

	// The answer path: read, record, write back, with the countdown
	// goroutine ticking alongside.
	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	got.Answer(0, nil)
	if err := store.Save(ctx, got); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	// Let the ticker fire a couple of times.
	time.Sleep(2500 * time.Millisecond)

	after, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(after.Answers) != 1 || after.Current != 1 {
		t.Fatalf("timer overwrote the stored attempt: %d answers, pointer %d", len(after.Answers), after.Current)
	}
}

// The loser of the finalize race must not produce a result, so its caller
// has nothing to persist or announce.
func TestFinalizeLosesRaceQuietly(t *testing.T) {
	svc, _ := testSessionService(t)

	// The session was never stored, as if the other finalizer already
	// deleted it.
	sess := testSession()
	sess.ForceComplete()

	result, err := svc.finalize(context.Background(), sess)
	if err != nil {
		t.Fatalf("finalize returned error: %v", err)
	}
	if result != nil {
		t.Errorf("expected no result for the losing finalizer, got %+v", result)
	}
}
