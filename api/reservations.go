package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"reservas/entities"
	"reservas/observability"
)

type ReservationsClient struct {
	clients *Clients
}

func NewReservationsClient(clients *Clients) *ReservationsClient {
	if clients == nil {
		panic("clients is nil")
	}
	return &ReservationsClient{clients: clients}
}

// PlaceReservation submits a venue-page reservation, the flow where the user
// picks the date themselves.
func (c ReservationsClient) PlaceReservation(ctx context.Context, request entities.ReservationRequest) error {
	return c.post(ctx, "/api/reservas/place-reservation", request)
}

// CreateForEvent submits a reservation built from a selected event snapshot.
func (c ReservationsClient) CreateForEvent(ctx context.Context, request entities.ReservationRequest) error {
	return c.post(ctx, "/api/reservas", request)
}

func (c ReservationsClient) post(ctx context.Context, path string, request entities.ReservationRequest) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshaling reservation request: %w", err)
	}

	req, err := c.clients.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.clients.httpClient.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues(path, "network_error").Inc()
		return fmt.Errorf("posting reservation: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		observability.UpstreamRequests.WithLabelValues(path, "ok").Inc()
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		observability.UpstreamRequests.WithLabelValues(path, "unauthorized").Inc()
		return ErrUnauthorized
	default:
		observability.UpstreamRequests.WithLabelValues(path, "rejected").Inc()
		return &ServerRejectedError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}
}

// GetByID fetches a single reservation, including its status and QR code.
func (c ReservationsClient) GetByID(ctx context.Context, reservationID int) (entities.Reservation, error) {
	path := fmt.Sprintf("/api/reservas/%d", reservationID)

	req, err := c.clients.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return entities.Reservation{}, err
	}

	resp, err := c.clients.httpClient.Do(req)
	if err != nil {
		return entities.Reservation{}, fmt.Errorf("getting reservation %d: %w", reservationID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var reservation entities.Reservation
		if err := json.NewDecoder(resp.Body).Decode(&reservation); err != nil {
			return entities.Reservation{}, fmt.Errorf("decoding reservation %d: %w", reservationID, err)
		}
		return reservation, nil
	case http.StatusUnauthorized:
		return entities.Reservation{}, ErrUnauthorized
	default:
		return entities.Reservation{}, &ServerRejectedError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}
}

// List fetches all reservations. The upstream endpoint is not scoped by
// user; callers filter by user id the way the original client did.
func (c ReservationsClient) List(ctx context.Context) ([]entities.Reservation, error) {
	req, err := c.clients.newRequest(ctx, http.MethodGet, "/api/reservas", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.clients.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var reservations []entities.Reservation
		if err := json.NewDecoder(resp.Body).Decode(&reservations); err != nil {
			return nil, fmt.Errorf("decoding reservations: %w", err)
		}
		return reservations, nil
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	default:
		return nil, &ServerRejectedError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}
}

func decodeErrorMessage(body io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Error == "" {
		return "upstream rejected the request"
	}
	return payload.Error
}
