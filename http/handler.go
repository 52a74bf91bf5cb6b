package http

import (
	"context"

	"reservas/entities"
	"reservas/reservation"
)

type Handler struct {
	sessions        SessionStore
	selectedEvents  SelectedEventStore
	submitter       Submitter
	eventsClient    EventsLister
	reservationsAPI ReservationsAPI
	usersAPI        UsersAPI
	opsReservations OpsReservationsRepository
}

type SessionStore interface {
	Create(ctx context.Context, sess entities.Session) (string, error)
	Clear(ctx context.Context, sessionID string) error
	RequireAuthenticated(ctx context.Context, sessionID string) (entities.AuthedUser, error)
}

type SelectedEventStore interface {
	Set(ctx context.Context, sessionID string, event entities.Event) error
	Get(ctx context.Context, sessionID string) (entities.Event, bool, error)
	Clear(ctx context.Context, sessionID string) error
}

type Submitter interface {
	Submit(ctx context.Context, sessionID string, req reservation.SubmitRequest) entities.ReservationOutcome
}

type EventsLister interface {
	List(ctx context.Context) ([]entities.Event, error)
}

type ReservationsAPI interface {
	GetByID(ctx context.Context, reservationID int) (entities.Reservation, error)
	List(ctx context.Context) ([]entities.Reservation, error)
}

type UsersAPI interface {
	Me(ctx context.Context, token string) (entities.User, error)
	UpdateMe(ctx context.Context, token string, fields map[string]string) error
}

type OpsReservationsRepository interface {
	GetAll(ctx context.Context, reservationDate *string) ([]entities.OpsReservation, error)
	GetByID(ctx context.Context, submissionID string) (entities.OpsReservation, error)
}
