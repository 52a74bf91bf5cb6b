package event

import (
	"context"
	"encoding/json"
	"fmt"

	"reservas/entities"
)

func (h Handler) StoreInDataLake(ctx context.Context, event *entities.ReservationSubmitted) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	return h.dataLake.Create(ctx, entities.DataLakeEvent{
		EventID:     event.Header.ID,
		PublishedAt: event.Header.PublishedAt,
		EventName:   "ReservationSubmitted",
		Payload:     payload,
	})
}
