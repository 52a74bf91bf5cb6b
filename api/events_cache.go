package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"reservas/entities"
	"reservas/observability"
)

const eventsCacheKey = "cache:events"

type EventsLister interface {
	List(ctx context.Context) ([]entities.Event, error)
}

// CachedEventsClient fronts the upstream listing with a short-lived Redis
// cache. The listing is read-only for this app, so staleness within the TTL
// is acceptable.
type CachedEventsClient struct {
	inner EventsLister
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedEventsClient(inner EventsLister, rdb *redis.Client, ttl time.Duration) *CachedEventsClient {
	if inner == nil {
		panic("events lister is nil")
	}
	if rdb == nil {
		panic("redis client is nil")
	}
	return &CachedEventsClient{inner: inner, rdb: rdb, ttl: ttl}
}

func (c CachedEventsClient) List(ctx context.Context) ([]entities.Event, error) {
	cached, err := c.rdb.Get(ctx, eventsCacheKey).Bytes()
	if err == nil {
		var events []entities.Event
		if err := json.Unmarshal(cached, &events); err == nil {
			return events, nil
		}
		// malformed cache entry: fall through to the upstream
	}

	events, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(events)
	if err == nil {
		if err := c.rdb.Set(ctx, eventsCacheKey, payload, c.ttl).Err(); err != nil {
			observability.FromContext(ctx).WithError(err).Warn("Could not cache events listing")
		}
	}

	return events, nil
}
