package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"reservas/entities"
)

type OpsReservationReadModel struct {
	conn *DB
}

func NewOpsReservationReadModel(db *DB) OpsReservationReadModel {
	return OpsReservationReadModel{
		conn: db,
	}
}

func (r OpsReservationReadModel) OnReservationSubmitted(ctx context.Context, event *entities.ReservationSubmitted) error {
	err := r.createReadModel(ctx, entities.OpsReservation{
		SubmissionID:      event.SubmissionID,
		UserID:            event.UserID,
		EventID:           event.EventID,
		CasaDaReserva:     event.CasaDaReserva,
		QuantidadePessoas: event.QuantidadePessoas,
		Mesas:             event.Mesas,
		DataDaReserva:     event.DataDaReserva,
		SubmittedAt:       event.Header.PublishedAt,
		LastUpdate:        time.Now(),
	})
	if err != nil {
		return fmt.Errorf("could not create read model: %w", err)
	}

	return nil
}

func (r OpsReservationReadModel) createReadModel(ctx context.Context, opsReservation entities.OpsReservation) error {
	payload, err := json.Marshal(opsReservation)
	if err != nil {
		return err
	}

	_, err = r.conn.Conn.ExecContext(ctx, `
		INSERT INTO
		    read_model_ops_reservations (payload, submission_id)
		VALUES
			($1, $2)
		ON CONFLICT (submission_id) DO NOTHING; -- the event is redelivered at least once - we don't want to override
`, payload, opsReservation.SubmissionID)

	if err != nil {
		return fmt.Errorf("could not create read model: %w", err)
	}

	return nil
}

// GetAll lists the read model, optionally narrowed to one reservation date.
func (r OpsReservationReadModel) GetAll(ctx context.Context, reservationDate *string) ([]entities.OpsReservation, error) {
	query := "SELECT payload FROM read_model_ops_reservations"
	args := []any{}
	if reservationDate != nil && *reservationDate != "" {
		query += " WHERE payload ->> 'data_da_reserva' = $1"
		args = append(args, *reservationDate)
	}

	rows, err := r.conn.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not get ops reservations: %w", err)
	}
	defer rows.Close()

	reservations := []entities.OpsReservation{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("could not scan ops reservation: %w", err)
		}

		reservation, err := r.unmarshalReadModelFromDB(payload)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	return reservations, rows.Err()
}

func (r OpsReservationReadModel) GetByID(ctx context.Context, submissionID string) (entities.OpsReservation, error) {
	var payload []byte

	err := r.conn.Conn.QueryRowContext(
		ctx,
		"SELECT payload FROM read_model_ops_reservations WHERE submission_id = $1",
		submissionID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return entities.OpsReservation{}, fmt.Errorf("ops reservation %s not found", submissionID)
	}
	if err != nil {
		return entities.OpsReservation{}, fmt.Errorf("could not get ops reservation: %w", err)
	}

	return r.unmarshalReadModelFromDB(payload)
}

func (r OpsReservationReadModel) unmarshalReadModelFromDB(payload []byte) (entities.OpsReservation, error) {
	var opsReadModel entities.OpsReservation

	err := json.Unmarshal(payload, &opsReadModel)
	if err != nil {
		return entities.OpsReservation{}, err
	}

	return opsReadModel, nil
}
