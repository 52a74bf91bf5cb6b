package api

import (
	"context"
	"sync"

	"reservas/entities"
)

// ReservationsMock records submissions instead of calling the upstream.
type ReservationsMock struct {
	lock sync.Mutex

	PlacedReservations  []entities.ReservationRequest
	CreatedReservations []entities.ReservationRequest
	Reservations        map[int]entities.Reservation

	// SubmitErr, when set, is returned by both submission methods.
	SubmitErr error
}

func (m *ReservationsMock) PlaceReservation(ctx context.Context, request entities.ReservationRequest) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.SubmitErr != nil {
		return m.SubmitErr
	}
	m.PlacedReservations = append(m.PlacedReservations, request)
	return nil
}

func (m *ReservationsMock) CreateForEvent(ctx context.Context, request entities.ReservationRequest) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.SubmitErr != nil {
		return m.SubmitErr
	}
	m.CreatedReservations = append(m.CreatedReservations, request)
	return nil
}

func (m *ReservationsMock) GetByID(ctx context.Context, reservationID int) (entities.Reservation, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	reservation, ok := m.Reservations[reservationID]
	if !ok {
		return entities.Reservation{}, &ServerRejectedError{StatusCode: 404, Message: "reserva não encontrada"}
	}
	return reservation, nil
}

func (m *ReservationsMock) List(ctx context.Context) ([]entities.Reservation, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	reservations := make([]entities.Reservation, 0, len(m.Reservations))
	for _, reservation := range m.Reservations {
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

// SubmissionCount reports how many submissions reached the mock, across both
// endpoints.
func (m *ReservationsMock) SubmissionCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return len(m.PlacedReservations) + len(m.CreatedReservations)
}
