package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReservationRequest is the JSON body POSTed to the upstream reservation
// endpoints. Field names follow the upstream wire format.
type ReservationRequest struct {
	UserID            int    `json:"userId"`
	EventID           string `json:"eventId,omitempty"`
	QuantidadePessoas int    `json:"quantidade_pessoas"`
	Mesas             string `json:"mesas"`
	DataDaReserva     string `json:"data_da_reserva"`
	CasaDaReserva     string `json:"casa_da_reserva"`
}

// Reservation statuses as the upstream reports them.
const (
	StatusAprovado  = "Aprovado"
	StatusCancelado = "Cancelado"
	StatusPendente  = "Pendente"
)

// Reservation is the record returned by the upstream lookup and listing
// endpoints.
type Reservation struct {
	ID             int    `json:"id"`
	UserID         int    `json:"user_id"`
	CasaDoEvento   string `json:"casa_do_evento"`
	DataDoEvento   string `json:"data_do_evento"`
	ImagemDoEvento string `json:"imagem_do_evento,omitempty"`
	Status         string `json:"status"`
	QRCode         string `json:"qrcode,omitempty"`
}

// ReservationLog is the gateway's local record of a submission the upstream
// accepted. It is written in the same transaction as the outbox message.
type ReservationLog struct {
	SubmissionID      uuid.UUID `json:"submission_id" db:"submission_id"`
	UserID            int       `json:"user_id" db:"user_id"`
	EventID           string    `json:"event_id,omitempty" db:"event_id"`
	CasaDaReserva     string    `json:"casa_da_reserva" db:"casa_da_reserva"`
	QuantidadePessoas int       `json:"quantidade_pessoas" db:"quantidade_pessoas"`
	Mesas             string    `json:"mesas" db:"mesas"`
	DataDaReserva     string    `json:"data_da_reserva" db:"data_da_reserva"`
	SubmittedAt       time.Time `json:"submitted_at" db:"submitted_at"`
}

// OpsReservation is the read model entry served on the ops endpoints.
type OpsReservation struct {
	SubmissionID      uuid.UUID `json:"submission_id"`
	UserID            int       `json:"user_id"`
	EventID           string    `json:"event_id,omitempty"`
	CasaDaReserva     string    `json:"casa_da_reserva"`
	QuantidadePessoas int       `json:"quantidade_pessoas"`
	Mesas             string    `json:"mesas"`
	DataDaReserva     string    `json:"data_da_reserva"`
	SubmittedAt       time.Time `json:"submitted_at"`

	LastUpdate time.Time `json:"last_update"`
}
