package migrations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"reservas/db"
	"reservas/entities"
	"reservas/observability"
)

// RebuildOpsReadModel replays the data lake into the ops read model. Used
// when the read model table was lost or its shape changed.
func RebuildOpsReadModel(ctx context.Context, dl db.IDataLakeRepository, rm db.OpsReservationReadModel) error {
	var events []entities.DataLakeEvent

	logger := observability.FromContext(ctx)
	logger.Info("Rebuilding ops read model")

	timeout := time.Now().Add(time.Second * 10)

	// events are not immediately available in the data lake, so we need to wait for them
	for {
		var err error
		events, err = dl.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("could not get events from data lake: %w", err)
		}
		if len(events) > 0 {
			break
		}

		if time.Now().After(timeout) {
			return fmt.Errorf("timeout while waiting for events in data lake")
		}

		time.Sleep(time.Millisecond * 100)
	}

	logger.WithField("events_count", len(events)).Info("Has events to replay")

	for _, event := range events {
		start := time.Now()

		logger.WithFields(logrus.Fields{
			"event_name": event.EventName,
			"event_id":   event.EventID,
		}).Info("Replaying event")

		err := replayEvent(ctx, event, rm)
		if err != nil {
			return fmt.Errorf("could not replay event %s (%s): %w", event.EventID, event.EventName, err)
		}

		logger.WithField("duration", time.Since(start)).Info("Event replayed")
	}

	return nil
}

func replayEvent(ctx context.Context, event entities.DataLakeEvent, rm db.OpsReservationReadModel) error {
	switch event.EventName {
	case "ReservationSubmitted":
		submitted, err := unmarshalDataLakeEvent[entities.ReservationSubmitted](event)
		if err != nil {
			return err
		}

		return rm.OnReservationSubmitted(ctx, submitted)
	default:
		return fmt.Errorf("unknown event %s", event.EventName)
	}
}

func unmarshalDataLakeEvent[T any](event entities.DataLakeEvent) (*T, error) {
	eventInstance := new(T)

	err := json.Unmarshal(event.Payload, &eventInstance)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal event %s: %w", event.EventName, err)
	}

	return eventInstance, nil
}
