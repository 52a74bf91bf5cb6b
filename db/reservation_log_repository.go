package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reservas/entities"
	"reservas/message/event"
	"reservas/message/outbox"
)

type IReservationLogRepository interface {
	Record(ctx context.Context, submission entities.ReservationLog) error
	GetAll(ctx context.Context) ([]entities.ReservationLog, error)
}

type ReservationLogRepository struct {
	db *DB
}

func NewReservationLogRepository(db *DB) ReservationLogRepository {
	if db == nil {
		panic("db is nil")
	}
	return ReservationLogRepository{
		db: db,
	}
}

// Record stores the accepted submission and publishes ReservationSubmitted in
// the same transaction, so the event cannot be lost between the insert and
// the publish. A duplicate submission id means the work was already done.
func (r ReservationLogRepository) Record(ctx context.Context, submission entities.ReservationLog) (err error) {
	tx, err := r.db.Conn.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	res, err := tx.NamedExecContext(ctx, `
		INSERT INTO
		    reservation_log (submission_id, user_id, event_id, casa_da_reserva, quantidade_pessoas, mesas, data_da_reserva, submitted_at)
		VALUES (:submission_id, :user_id, :event_id, :casa_da_reserva, :quantidade_pessoas, :mesas, :data_da_reserva, :submitted_at)
		ON CONFLICT (submission_id) DO NOTHING
		`, submission)
	if err != nil {
		return fmt.Errorf("could not record submission: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read insert result: %w", err)
	}
	if inserted == 0 {
		// already recorded and published
		return nil
	}

	outboxPublisher, err := outbox.NewPublisherForDb(ctx, tx)
	if err != nil {
		return fmt.Errorf("error creating event outbox publisher: %w", err)
	}
	err = event.NewBus(outboxPublisher).Publish(ctx, entities.ReservationSubmitted{
		Header:            entities.NewEventHeaderWithIdempotencyKey(submission.SubmissionID.String()),
		SubmissionID:      submission.SubmissionID,
		UserID:            submission.UserID,
		EventID:           submission.EventID,
		CasaDaReserva:     submission.CasaDaReserva,
		QuantidadePessoas: submission.QuantidadePessoas,
		Mesas:             submission.Mesas,
		DataDaReserva:     submission.DataDaReserva,
	})
	if err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}

	return nil
}

func (r ReservationLogRepository) GetAll(ctx context.Context) ([]entities.ReservationLog, error) {
	var submissions []entities.ReservationLog
	err := r.db.Conn.SelectContext(ctx, &submissions, `
		SELECT submission_id, user_id, event_id, casa_da_reserva, quantidade_pessoas, mesas, data_da_reserva, submitted_at
		FROM reservation_log
		ORDER BY submitted_at`)
	if err != nil {
		return nil, fmt.Errorf("could not get submissions: %w", err)
	}

	return submissions, nil
}
