package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// IEvent lets the bus pick a topic prefix per event.
type IEvent interface {
	IsInternal() bool
}

// ReservationSubmitted is published through the outbox in the same
// transaction that records the submission locally.
type ReservationSubmitted struct {
	Header EventHeader `json:"header"`

	SubmissionID      uuid.UUID `json:"submission_id"`
	UserID            int       `json:"user_id"`
	EventID           string    `json:"event_id,omitempty"`
	CasaDaReserva     string    `json:"casa_da_reserva"`
	QuantidadePessoas int       `json:"quantidade_pessoas"`
	Mesas             string    `json:"mesas"`
	DataDaReserva     string    `json:"data_da_reserva"`
}

func (ReservationSubmitted) IsInternal() bool { return false }

// DataLakeEvent is the append-only archive form of any published event.
type DataLakeEvent struct {
	EventID     string          `json:"event_id"`
	PublishedAt time.Time       `json:"published_at"`
	EventName   string          `json:"event_name"`
	Payload     json.RawMessage `json:"payload"`
}
