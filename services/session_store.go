package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tastebud/session"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps in-progress quiz attempts in Redis as JSON blobs. The
// TTL is housekeeping for abandoned attempts; completed attempts are deleted
// explicitly when their result is persisted.
type SessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: client, ttl: ttl}
}

func (st *SessionStore) Save(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := st.redis.Set(ctx, sessionKeyPrefix+s.ID, data, st.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (st *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	data, err := st.redis.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var s session.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &s, nil
}

// Delete removes the session and reports whether it was present. The
// deletion is the commit point for finalizing an attempt: of two racing
// finalizers, only the one that observes deleted=true proceeds.
func (st *SessionStore) Delete(ctx context.Context, id string) (bool, error) {
	n, err := st.redis.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
