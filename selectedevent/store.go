package selectedevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"reservas/entities"
)

// Store carries one selected event snapshot per session across navigation.
// There is no merge operation: Set always replaces the whole record.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	if rdb == nil {
		panic("redis client is nil")
	}
	return &Store{rdb: rdb}
}

func key(sessionID string) string {
	return "selected_event:" + sessionID
}

func (s *Store) Set(ctx context.Context, sessionID string, event entities.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling selected event: %w", err)
	}
	if err := s.rdb.Set(ctx, key(sessionID), payload, 0).Err(); err != nil {
		return fmt.Errorf("storing selected event: %w", err)
	}
	return nil
}

// Get returns the snapshot, or ok=false when none was set. Malformed
// persisted data is treated as absent, never as an error.
func (s *Store) Get(ctx context.Context, sessionID string) (entities.Event, bool, error) {
	payload, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entities.Event{}, false, nil
	}
	if err != nil {
		return entities.Event{}, false, fmt.Errorf("reading selected event: %w", err)
	}

	var event entities.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return entities.Event{}, false, nil
	}
	return event, true, nil
}

// Clear removes the snapshot. Used when the owning session is cleared.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clearing selected event: %w", err)
	}
	return nil
}
