package api

import (
	"context"
	"sync"

	"reservas/entities"
)

// EventsMock serves a fixed listing and counts calls.
type EventsMock struct {
	lock sync.Mutex

	Events    []entities.Event
	ListCalls int
}

func (m *EventsMock) List(ctx context.Context) ([]entities.Event, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.ListCalls++
	return m.Events, nil
}
