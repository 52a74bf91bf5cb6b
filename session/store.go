package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reservas/entities"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrUnauthenticated = errors.New("session is not authenticated")
)

// Store keeps sessions in Redis, one JSON value per session. Token and user
// id live in a single key so they are written and cleared atomically: there
// is no state where one is present without the other.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if rdb == nil {
		panic("redis client is nil")
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string {
	return "session:" + sessionID
}

// Create stores externally-issued credentials and returns the new session id.
func (s *Store) Create(ctx context.Context, sess entities.Session) (string, error) {
	if !sess.Authenticated() {
		return "", ErrUnauthenticated
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("marshaling session: %w", err)
	}

	sessionID := uuid.NewString()
	if err := s.rdb.Set(ctx, key(sessionID), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return sessionID, nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (entities.Session, error) {
	payload, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.Session{}, ErrNotFound
	}
	if err != nil {
		return entities.Session{}, fmt.Errorf("reading session: %w", err)
	}

	var sess entities.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		// a corrupt session is unusable; treat it as absent
		return entities.Session{}, ErrNotFound
	}
	return sess, nil
}

// Clear removes the session. Removing the single key drops token and user id
// together.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// RequireAuthenticated resolves the session to an identity allowed to
// reserve, or reports ErrUnauthenticated.
func (s *Store) RequireAuthenticated(ctx context.Context, sessionID string) (entities.AuthedUser, error) {
	sess, err := s.Get(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return entities.AuthedUser{}, ErrUnauthenticated
	}
	if err != nil {
		return entities.AuthedUser{}, err
	}
	if !sess.Authenticated() {
		return entities.AuthedUser{}, ErrUnauthenticated
	}
	return entities.AuthedUser{UserID: sess.UserID, Token: sess.AuthToken}, nil
}
