package api

import (
	"context"
	"sync"

	"reservas/entities"
)

// UsersMock resolves profiles by token and records updates.
type UsersMock struct {
	lock sync.Mutex

	UsersByToken map[string]entities.User
	Updates      []map[string]string
}

func (m *UsersMock) Me(ctx context.Context, token string) (entities.User, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	user, ok := m.UsersByToken[token]
	if !ok {
		return entities.User{}, ErrUnauthorized
	}
	return user, nil
}

func (m *UsersMock) UpdateMe(ctx context.Context, token string, fields map[string]string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.UsersByToken[token]; !ok {
		return ErrUnauthorized
	}
	m.Updates = append(m.Updates, fields)
	return nil
}
