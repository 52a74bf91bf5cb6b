package db

import (
	"context"
	"fmt"

	"reservas/entities"
)

type IDataLakeRepository interface {
	Create(ctx context.Context, event entities.DataLakeEvent) error
	GetAll(ctx context.Context) ([]entities.DataLakeEvent, error)
}

type DataLakeRepository struct {
	db *DB
}

func NewDataLakeRepository(db *DB) DataLakeRepository {
	if db == nil {
		panic("db is nil")
	}
	return DataLakeRepository{
		db: db,
	}
}

func (e DataLakeRepository) Create(ctx context.Context, event entities.DataLakeEvent) error {
	_, err := e.db.Conn.ExecContext(ctx, `
		INSERT INTO
		    events (event_id, published_at, event_name, event_payload)
		VALUES
			 ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING;
`, event.EventID, event.PublishedAt, event.EventName, []byte(event.Payload))

	if err != nil {
		return fmt.Errorf("could not store event into data lake: %w", err)
	}

	return nil
}

func (e DataLakeRepository) GetAll(ctx context.Context) ([]entities.DataLakeEvent, error) {
	rows, err := e.db.Conn.QueryContext(ctx, `
		SELECT event_id, published_at, event_name, event_payload
		FROM events
		ORDER BY published_at`)
	if err != nil {
		return nil, fmt.Errorf("could not get events from data lake: %w", err)
	}
	defer rows.Close()

	var events []entities.DataLakeEvent
	for rows.Next() {
		var event entities.DataLakeEvent
		var payload []byte
		if err := rows.Scan(&event.EventID, &event.PublishedAt, &event.EventName, &payload); err != nil {
			return nil, fmt.Errorf("could not scan event: %w", err)
		}
		event.Payload = payload
		events = append(events, event)
	}

	return events, rows.Err()
}
