package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"reservas/api"
	"reservas/entities"
	reservasHttp "reservas/http"
)

type sessionsStub struct {
	lock sync.Mutex

	ClearedIDs []string
}

func (s *sessionsStub) Create(ctx context.Context, sess entities.Session) (string, error) {
	return "", errors.New("not supported")
}

func (s *sessionsStub) Clear(ctx context.Context, sessionID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.ClearedIDs = append(s.ClearedIDs, sessionID)
	return nil
}

func (s *sessionsStub) RequireAuthenticated(ctx context.Context, sessionID string) (entities.AuthedUser, error) {
	if sessionID == "" {
		return entities.AuthedUser{}, errors.New("session is not authenticated")
	}
	return entities.AuthedUser{UserID: 42, Token: "token-42"}, nil
}

type unauthorizedReservationsAPI struct{}

func (unauthorizedReservationsAPI) GetByID(ctx context.Context, reservationID int) (entities.Reservation, error) {
	return entities.Reservation{}, api.ErrUnauthorized
}

func (unauthorizedReservationsAPI) List(ctx context.Context) ([]entities.Reservation, error) {
	return nil, api.ErrUnauthorized
}

type unauthorizedUsersAPI struct{}

func (unauthorizedUsersAPI) Me(ctx context.Context, token string) (entities.User, error) {
	return entities.User{}, api.ErrUnauthorized
}

func (unauthorizedUsersAPI) UpdateMe(ctx context.Context, token string, fields map[string]string) error {
	return api.ErrUnauthorized
}

// An upstream 401 on any authenticated endpoint must drop the session, not
// just report it: a dead token is never kept around.
func TestUpstreamUnauthorizedClearsSession(t *testing.T) {
	for _, tc := range []struct {
		Name string
		Path string
	}{
		{Name: "reservations list", Path: "/reservations"},
		{Name: "reservation lookup", Path: "/reservations/7"},
		{Name: "profile", Path: "/users/me"},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			sessions := &sessionsStub{}
			router := reservasHttp.NewHttpRouter(
				sessions,
				nil,
				nil,
				nil,
				unauthorizedReservationsAPI{},
				unauthorizedUsersAPI{},
				nil,
			)

			req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
			req.Header.Set("X-Session-Id", "sess-1")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, []string{"sess-1"}, sessions.ClearedIDs)
		})
	}
}
