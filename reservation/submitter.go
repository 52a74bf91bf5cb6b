package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"reservas/api"
	"reservas/entities"
	"reservas/observability"
)

const (
	MinPeople = 1
	MaxPeople = 30

	dateLayout = "2006-01-02"
)

type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (entities.Session, error)
	Clear(ctx context.Context, sessionID string) error
}

type SelectedEventRepository interface {
	Get(ctx context.Context, sessionID string) (entities.Event, bool, error)
}

type UpstreamReservations interface {
	PlaceReservation(ctx context.Context, request entities.ReservationRequest) error
	CreateForEvent(ctx context.Context, request entities.ReservationRequest) error
}

type SubmissionRecorder interface {
	Record(ctx context.Context, submission entities.ReservationLog) error
}

// SubmitRequest carries one submission attempt.
//
// The two source flows differ on purpose: venue pages require a user-picked
// date, while the selected-event flow defaults to today. UseSelectedEvent
// selects the policy; neither behavior is a fallback for the other.
type SubmitRequest struct {
	VenueName        string
	UseSelectedEvent bool
	PeopleCount      int
	TableConfig      string
	Date             string // YYYY-MM-DD; empty means "today" in the selected-event flow
}

// Submitter validates, constructs and submits reservations against the
// upstream API. Each call to Submit is independent; the only cross-call
// state is the per-session in-flight guard that suppresses double submits.
type Submitter struct {
	sessions SessionRepository
	selected SelectedEventRepository
	upstream UpstreamReservations
	recorder SubmissionRecorder

	now func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewSubmitter(
	sessions SessionRepository,
	selected SelectedEventRepository,
	upstream UpstreamReservations,
	recorder SubmissionRecorder,
) *Submitter {
	if sessions == nil {
		panic("sessions repository is nil")
	}
	if selected == nil {
		panic("selected event repository is nil")
	}
	if upstream == nil {
		panic("upstream reservations client is nil")
	}
	if recorder == nil {
		panic("submission recorder is nil")
	}
	return &Submitter{
		sessions: sessions,
		selected: selected,
		upstream: upstream,
		recorder: recorder,
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
}

// Submit runs the preconditions in order, issues at most one POST and maps
// the result onto the outcome variant. It returns a value in every case and
// never retries: a failed submission needs an explicit new user action.
func (s *Submitter) Submit(ctx context.Context, sessionID string, req SubmitRequest) entities.ReservationOutcome {
	// authentication comes before everything else, the in-flight guard
	// included: an unauthenticated caller is sent to login, never told to
	// wait on a submission that cannot exist
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil || !sess.Authenticated() {
		return s.finish(entities.FailedOutcome(entities.ReasonUnauthenticated, "faça login para reservar"))
	}

	if !s.begin(sessionID) {
		// a submission for this session is already in flight
		return s.finish(entities.PendingOutcome())
	}
	defer s.end(sessionID)

	if req.PeopleCount < MinPeople || req.PeopleCount > MaxPeople {
		return s.finish(entities.FailedOutcome(
			entities.ReasonInvalidPeopleCount,
			fmt.Sprintf("quantidade de pessoas deve estar entre %d e %d", MinPeople, MaxPeople),
		))
	}

	tableConfig, ok := entities.ParseTableConfig(req.TableConfig)
	if !ok {
		return s.finish(entities.FailedOutcome(entities.ReasonInvalidTableConfig, "configuração de mesas inválida"))
	}

	reservationDate, outcome, ok := s.resolveDate(req)
	if !ok {
		return s.finish(outcome)
	}

	venueName := req.VenueName
	eventID := ""
	if req.UseSelectedEvent {
		snapshot, found, err := s.selected.Get(ctx, sessionID)
		if err != nil || !found {
			return s.finish(entities.FailedOutcome(entities.ReasonNoSelectedEvent, "nenhum evento selecionado"))
		}
		venueName = snapshot.CasaDoEvento
		eventID = snapshot.ID
	}
	if venueName == "" {
		return s.finish(entities.FailedOutcome(entities.ReasonInvalidVenue, "casa da reserva não informada"))
	}

	request := entities.ReservationRequest{
		UserID:            sess.UserID,
		EventID:           eventID,
		QuantidadePessoas: req.PeopleCount,
		Mesas:             tableConfig.Label(),
		DataDaReserva:     reservationDate.Format(dateLayout),
		CasaDaReserva:     venueName,
	}

	if req.UseSelectedEvent {
		err = s.upstream.CreateForEvent(ctx, request)
	} else {
		err = s.upstream.PlaceReservation(ctx, request)
	}

	var rejected *api.ServerRejectedError
	switch {
	case err == nil:
		s.record(ctx, request)
		return s.finish(entities.SucceededOutcome())
	case errors.Is(err, api.ErrUnauthorized):
		if clearErr := s.sessions.Clear(ctx, sessionID); clearErr != nil {
			observability.FromContext(ctx).WithError(clearErr).Error("Could not clear rejected session")
		}
		return s.finish(entities.FailedOutcome(entities.ReasonUnauthenticated, "sessão expirada, faça login novamente"))
	case errors.As(err, &rejected):
		return s.finish(entities.FailedOutcome(entities.ReasonServerRejected, rejected.Message))
	default:
		return s.finish(entities.FailedOutcome(entities.ReasonNetworkError, "não foi possível contatar o serviço de reservas"))
	}
}

func (s *Submitter) resolveDate(req SubmitRequest) (time.Time, entities.ReservationOutcome, bool) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if req.Date == "" {
		if !req.UseSelectedEvent {
			// venue flow: the date is user-picked, never defaulted
			return time.Time{}, entities.FailedOutcome(entities.ReasonInvalidReservationDate, "selecione uma data para a reserva"), false
		}
		return today, entities.ReservationOutcome{}, true
	}

	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return time.Time{}, entities.FailedOutcome(entities.ReasonInvalidReservationDate, "data da reserva inválida"), false
	}
	if date.Before(today) {
		return time.Time{}, entities.FailedOutcome(entities.ReasonInvalidReservationDate, "data da reserva no passado"), false
	}
	return date, entities.ReservationOutcome{}, true
}

func (s *Submitter) record(ctx context.Context, request entities.ReservationRequest) {
	submission := entities.ReservationLog{
		SubmissionID:      uuid.New(),
		UserID:            request.UserID,
		EventID:           request.EventID,
		CasaDaReserva:     request.CasaDaReserva,
		QuantidadePessoas: request.QuantidadePessoas,
		Mesas:             request.Mesas,
		DataDaReserva:     request.DataDaReserva,
		SubmittedAt:       s.now().UTC(),
	}
	// the upstream already accepted; a local bookkeeping failure must not
	// turn the user-visible outcome into an error
	if err := s.recorder.Record(ctx, submission); err != nil {
		observability.FromContext(ctx).WithError(err).Error("Could not record accepted reservation")
	}
}

func (s *Submitter) finish(outcome entities.ReservationOutcome) entities.ReservationOutcome {
	label := string(outcome.State)
	if outcome.State == entities.OutcomeFailed {
		label = string(outcome.Reason)
	}
	observability.SubmissionOutcomes.WithLabelValues(label).Inc()
	return outcome
}

func (s *Submitter) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *Submitter) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, sessionID)
}
