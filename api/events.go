package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"reservas/entities"
)

type EventsClient struct {
	clients *Clients
}

func NewEventsClient(clients *Clients) *EventsClient {
	if clients == nil {
		panic("clients is nil")
	}
	return &EventsClient{clients: clients}
}

func (c EventsClient) List(ctx context.Context) ([]entities.Event, error) {
	req, err := c.clients.newRequest(ctx, http.MethodGet, "/api/events", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.clients.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServerRejectedError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorMessage(resp.Body),
		}
	}

	var events []entities.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}
	return events, nil
}
