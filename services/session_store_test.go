package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tastebud/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(client, time.Hour), mr
}

func testSession() *session.Session {
	return &session.Session{
		ID:     "a6e9b7f1-0000-4000-8000-000000000001",
		UserID: 42,
		QuizID: 7,
		Questions: []session.QuestionKey{
			{QuestionID: 100, CorrectAnswer: 0, Points: 1},
			{QuestionID: 101, CorrectAnswer: 2, Points: 1},
		},
		Answers:   []session.Answer{},
		StartedAt: time.Now().UTC().Truncate(time.Second),
		TimeLimit: 600,
	}
}

func TestSessionStoreSaveAndGet(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	sess := testSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.UserID != sess.UserID || got.QuizID != sess.QuizID {
		t.Errorf("round trip lost identity: %+v", got)
	}
	if len(got.Questions) != 2 || got.Questions[1].CorrectAnswer != 2 {
		t.Errorf("round trip lost question keys: %+v", got.Questions)
	}
	if got.TimeLimit != 600 {
		t.Errorf("round trip lost the time limit: %d", got.TimeLimit)
	}
}

func TestSessionStoreGetMissing(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.Get(context.Background(), "no-such-session")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStoreDeleteReportsPresence(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	sess := testSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	deleted, err := store.Delete(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Error("first delete should report the session was present")
	}

	// The second delete loses the race: nothing left to remove.
	deleted, err = store.Delete(ctx, sess.ID)
	if err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	if deleted {
		t.Error("second delete must report absent")
	}

	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSessionStoreTTL(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	sess := testSession()
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected expired session to be gone, got %v", err)
	}
}

func TestSessionStoreUnavailable(t *testing.T) {
	store, mr := testStore(t)
	mr.Close()

	if err := store.Save(context.Background(), testSession()); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
