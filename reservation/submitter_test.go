package reservation_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservas/api"
	"reservas/entities"
	"reservas/reservation"
)

type sessionsFake struct {
	lock sync.Mutex

	Sessions   map[string]entities.Session
	ClearedIDs []string
	GetErr     error
}

func (f *sessionsFake) Get(ctx context.Context, sessionID string) (entities.Session, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.GetErr != nil {
		return entities.Session{}, f.GetErr
	}
	sess, ok := f.Sessions[sessionID]
	if !ok {
		return entities.Session{}, errors.New("session not found")
	}
	return sess, nil
}

func (f *sessionsFake) Clear(ctx context.Context, sessionID string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	delete(f.Sessions, sessionID)
	f.ClearedIDs = append(f.ClearedIDs, sessionID)
	return nil
}

type selectedFake struct {
	Events map[string]entities.Event
	GetErr error
}

func (f *selectedFake) Get(ctx context.Context, sessionID string) (entities.Event, bool, error) {
	if f.GetErr != nil {
		return entities.Event{}, false, f.GetErr
	}
	event, ok := f.Events[sessionID]
	return event, ok, nil
}

type recorderFake struct {
	lock sync.Mutex

	Recorded  []entities.ReservationLog
	RecordErr error
}

func (f *recorderFake) Record(ctx context.Context, submission entities.ReservationLog) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.RecordErr != nil {
		return f.RecordErr
	}
	f.Recorded = append(f.Recorded, submission)
	return nil
}

type fixture struct {
	Sessions  *sessionsFake
	Selected  *selectedFake
	Upstream  *api.ReservationsMock
	Recorder  *recorderFake
	Submitter *reservation.Submitter
}

const sessionID = "sess-1"

func newFixture(t *testing.T) fixture {
	t.Helper()

	sessions := &sessionsFake{
		Sessions: map[string]entities.Session{
			sessionID: {UserID: 42, AuthToken: "token-42"},
		},
	}
	selected := &selectedFake{Events: map[string]entities.Event{}}
	upstream := &api.ReservationsMock{}
	recorder := &recorderFake{}

	return fixture{
		Sessions:  sessions,
		Selected:  selected,
		Upstream:  upstream,
		Recorder:  recorder,
		Submitter: reservation.NewSubmitter(sessions, selected, upstream, recorder),
	}
}

func validVenueRequest() reservation.SubmitRequest {
	return reservation.SubmitRequest{
		VenueName:   "Vila Mix",
		PeopleCount: 12,
		TableConfig: "2 Mesas / 12 cadeiras",
		Date:        time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
	}
}

func TestSubmit_Succeeds(t *testing.T) {
	f := newFixture(t)

	outcome := f.Submitter.Submit(context.Background(), sessionID, validVenueRequest())

	assert.Equal(t, entities.OutcomeSucceeded, outcome.State)
	assert.False(t, outcome.ConfirmationShown)

	require.Len(t, f.Upstream.PlacedReservations, 1)
	placed := f.Upstream.PlacedReservations[0]
	assert.Equal(t, 42, placed.UserID)
	assert.Equal(t, "Vila Mix", placed.CasaDaReserva)
	assert.Equal(t, 12, placed.QuantidadePessoas)
	assert.Equal(t, "2 Mesas / 12 cadeiras", placed.Mesas)
	assert.Empty(t, placed.EventID)

	require.Len(t, f.Recorder.Recorded, 1)
	assert.Equal(t, placed.CasaDaReserva, f.Recorder.Recorded[0].CasaDaReserva)
	assert.NotZero(t, f.Recorder.Recorded[0].SubmissionID)
}

func TestSubmit_UsesSelectedEventSnapshot(t *testing.T) {
	f := newFixture(t)
	f.Selected.Events[sessionID] = entities.Event{
		ID:           "evt-7",
		NomeDoEvento: "Baile da Santinha",
		CasaDoEvento: "Ribalta",
	}

	req := validVenueRequest()
	req.VenueName = ""
	req.UseSelectedEvent = true
	req.Date = ""

	outcome := f.Submitter.Submit(context.Background(), sessionID, req)

	assert.Equal(t, entities.OutcomeSucceeded, outcome.State)
	require.Len(t, f.Upstream.CreatedReservations, 1)
	created := f.Upstream.CreatedReservations[0]
	assert.Equal(t, "evt-7", created.EventID)
	assert.Equal(t, "Ribalta", created.CasaDaReserva)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), created.DataDaReserva)
	assert.Empty(t, f.Upstream.PlacedReservations)
}

func TestSubmit_NoSelectedEvent(t *testing.T) {
	f := newFixture(t)

	req := validVenueRequest()
	req.UseSelectedEvent = true

	outcome := f.Submitter.Submit(context.Background(), sessionID, req)

	assert.Equal(t, entities.OutcomeFailed, outcome.State)
	assert.Equal(t, entities.ReasonNoSelectedEvent, outcome.Reason)
	assert.Zero(t, f.Upstream.SubmissionCount())
}

func TestSubmit_Unauthenticated(t *testing.T) {
	f := newFixture(t)

	outcome := f.Submitter.Submit(context.Background(), "unknown-session", validVenueRequest())

	assert.Equal(t, entities.OutcomeFailed, outcome.State)
	assert.Equal(t, entities.ReasonUnauthenticated, outcome.Reason)
	assert.Zero(t, f.Upstream.SubmissionCount())
}

func TestSubmit_AuthCheckedBeforeFieldValidation(t *testing.T) {
	f := newFixture(t)

	// every field invalid, but no session: the auth failure must win
	outcome := f.Submitter.Submit(context.Background(), "unknown-session", reservation.SubmitRequest{
		PeopleCount: 0,
		TableConfig: "garbage",
		Date:        "not-a-date",
	})

	assert.Equal(t, entities.ReasonUnauthenticated, outcome.Reason)
}

func TestSubmit_PeopleCountBounds(t *testing.T) {
	for _, tc := range []struct {
		Name   string
		People int
		Valid  bool
	}{
		{Name: "zero", People: 0, Valid: false},
		{Name: "negative", People: -3, Valid: false},
		{Name: "min", People: 1, Valid: true},
		{Name: "max", People: 30, Valid: true},
		{Name: "above max", People: 31, Valid: false},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			f := newFixture(t)

			req := validVenueRequest()
			req.PeopleCount = tc.People

			outcome := f.Submitter.Submit(context.Background(), sessionID, req)

			if tc.Valid {
				assert.Equal(t, entities.OutcomeSucceeded, outcome.State)
				return
			}
			assert.Equal(t, entities.ReasonInvalidPeopleCount, outcome.Reason)
			assert.Zero(t, f.Upstream.SubmissionCount())
		})
	}
}

func TestSubmit_InvalidTableConfig(t *testing.T) {
	f := newFixture(t)

	req := validVenueRequest()
	req.TableConfig = "6 Mesas / 36 cadeiras"

	outcome := f.Submitter.Submit(context.Background(), sessionID, req)

	assert.Equal(t, entities.ReasonInvalidTableConfig, outcome.Reason)
	assert.Zero(t, f.Upstream.SubmissionCount())
}

func TestSubmit_DateValidation(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	for _, tc := range []struct {
		Name string
		Date string
	}{
		{Name: "missing in venue flow", Date: ""},
		{Name: "malformed", Date: "31/12/2026"},
		{Name: "in the past", Date: yesterday},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			f := newFixture(t)

			req := validVenueRequest()
			req.Date = tc.Date

			outcome := f.Submitter.Submit(context.Background(), sessionID, req)

			assert.Equal(t, entities.ReasonInvalidReservationDate, outcome.Reason)
			assert.Zero(t, f.Upstream.SubmissionCount())
		})
	}
}

func TestSubmit_TodayIsNotInThePast(t *testing.T) {
	f := newFixture(t)

	req := validVenueRequest()
	req.Date = time.Now().UTC().Format("2006-01-02")

	outcome := f.Submitter.Submit(context.Background(), sessionID, req)

	assert.Equal(t, entities.OutcomeSucceeded, outcome.State)
}

func TestSubmit_UpstreamUnauthorizedClearsSession(t *testing.T) {
	f := newFixture(t)
	f.Upstream.SubmitErr = fmt.Errorf("posting reservation: %w", api.ErrUnauthorized)

	outcome := f.Submitter.Submit(context.Background(), sessionID, validVenueRequest())

	assert.Equal(t, entities.ReasonUnauthenticated, outcome.Reason)
	assert.Equal(t, []string{sessionID}, f.Sessions.ClearedIDs)
	assert.Empty(t, f.Recorder.Recorded)
}

func TestSubmit_UpstreamRejection(t *testing.T) {
	f := newFixture(t)
	f.Upstream.SubmitErr = &api.ServerRejectedError{StatusCode: 422, Message: "casa lotada nesta data"}

	outcome := f.Submitter.Submit(context.Background(), sessionID, validVenueRequest())

	assert.Equal(t, entities.ReasonServerRejected, outcome.Reason)
	assert.Equal(t, "casa lotada nesta data", outcome.Message)
	assert.Empty(t, f.Sessions.ClearedIDs)
}

func TestSubmit_NetworkError(t *testing.T) {
	f := newFixture(t)
	f.Upstream.SubmitErr = errors.New("dial tcp: connection refused")

	outcome := f.Submitter.Submit(context.Background(), sessionID, validVenueRequest())

	assert.Equal(t, entities.ReasonNetworkError, outcome.Reason)
	assert.Empty(t, f.Recorder.Recorded)
}

func TestSubmit_RecorderFailureKeepsSuccess(t *testing.T) {
	f := newFixture(t)
	f.Recorder.RecordErr = errors.New("pq: connection reset")

	outcome := f.Submitter.Submit(context.Background(), sessionID, validVenueRequest())

	assert.Equal(t, entities.OutcomeSucceeded, outcome.State)
	assert.Len(t, f.Upstream.PlacedReservations, 1)
}

type blockingUpstream struct {
	Entered chan struct{}
	Release chan struct{}
}

func (b *blockingUpstream) PlaceReservation(ctx context.Context, request entities.ReservationRequest) error {
	b.Entered <- struct{}{}
	<-b.Release
	return nil
}

func (b *blockingUpstream) CreateForEvent(ctx context.Context, request entities.ReservationRequest) error {
	return b.PlaceReservation(ctx, request)
}

func TestSubmit_SecondSubmitWhileInFlightIsPending(t *testing.T) {
	upstream := &blockingUpstream{
		Entered: make(chan struct{}),
		Release: make(chan struct{}),
	}
	sessions := &sessionsFake{
		Sessions: map[string]entities.Session{
			sessionID: {UserID: 42, AuthToken: "token-42"},
		},
	}
	submitter := reservation.NewSubmitter(sessions, &selectedFake{}, upstream, &recorderFake{})

	first := make(chan entities.ReservationOutcome, 1)
	go func() {
		first <- submitter.Submit(context.Background(), sessionID, validVenueRequest())
	}()
	<-upstream.Entered

	second := submitter.Submit(context.Background(), sessionID, validVenueRequest())
	assert.Equal(t, entities.OutcomePending, second.State)

	close(upstream.Release)
	assert.Equal(t, entities.OutcomeSucceeded, (<-first).State)

	// the guard is per attempt, not permanent: a later submit goes through
	go func() {
		first <- submitter.Submit(context.Background(), sessionID, validVenueRequest())
	}()
	<-upstream.Entered
	assert.Equal(t, entities.OutcomeSucceeded, (<-first).State)
}

type gateSessions struct {
	lock  sync.Mutex
	calls int

	Entered chan struct{}
	Release chan struct{}
}

func (g *gateSessions) Get(ctx context.Context, sessionID string) (entities.Session, error) {
	g.lock.Lock()
	first := g.calls == 0
	g.calls++
	g.lock.Unlock()

	// only the first lookup blocks, so a second submit can overlap it
	if first {
		g.Entered <- struct{}{}
		<-g.Release
	}
	return entities.Session{}, errors.New("session not found")
}

func (g *gateSessions) Clear(ctx context.Context, sessionID string) error {
	return nil
}

func TestSubmit_ConcurrentUnauthenticatedIsNeverPending(t *testing.T) {
	sessions := &gateSessions{
		Entered: make(chan struct{}),
		Release: make(chan struct{}),
	}
	upstream := &api.ReservationsMock{}
	submitter := reservation.NewSubmitter(sessions, &selectedFake{}, upstream, &recorderFake{})

	first := make(chan entities.ReservationOutcome, 1)
	go func() {
		first <- submitter.Submit(context.Background(), "", validVenueRequest())
	}()
	<-sessions.Entered

	// the overlapping caller gets sent to login, not told to wait
	second := submitter.Submit(context.Background(), "", validVenueRequest())
	assert.Equal(t, entities.ReasonUnauthenticated, second.Reason)

	close(sessions.Release)
	assert.Equal(t, entities.ReasonUnauthenticated, (<-first).Reason)
	assert.Zero(t, upstream.SubmissionCount())
}

func TestMarkConfirmationShown(t *testing.T) {
	succeeded := entities.SucceededOutcome()
	succeeded.MarkConfirmationShown()
	assert.True(t, succeeded.ConfirmationShown)

	failed := entities.FailedOutcome(entities.ReasonNetworkError, "offline")
	failed.MarkConfirmationShown()
	assert.False(t, failed.ConfirmationShown)
}
