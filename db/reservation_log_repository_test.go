package db

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reservas/entities"
)

var testDb *sqlx.DB
var getDbOnce sync.Once

func getDb() *sqlx.DB {
	getDbOnce.Do(func() {
		var err error
		testDb, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}
	})
	return testDb
}

func TestRecordSubmission(t *testing.T) {
	dbconn := getDb()
	db := DB{Conn: dbconn}
	db.MigrateSchema()
	logRepo := NewReservationLogRepository(&db)
	ctx := context.Background()

	submission := entities.ReservationLog{
		SubmissionID:      uuid.New(),
		UserID:            42,
		CasaDaReserva:     "Vila Mix",
		QuantidadePessoas: 12,
		Mesas:             "2 Mesas / 12 cadeiras",
		DataDaReserva:     "2026-09-18",
		SubmittedAt:       time.Now().UTC(),
	}
	err := logRepo.Record(ctx, submission)
	require.NoError(t, err)

	// recording the same submission twice must not duplicate it
	err = logRepo.Record(ctx, submission)
	require.NoError(t, err)

	submissions, err := logRepo.GetAll(ctx)
	require.NoError(t, err)

	recorded := lo.Filter(submissions, func(s entities.ReservationLog, _ int) bool {
		return s.SubmissionID == submission.SubmissionID
	})
	require.Len(t, recorded, 1)
	assert.Equal(t, submission.CasaDaReserva, recorded[0].CasaDaReserva)
	assert.Equal(t, submission.DataDaReserva, recorded[0].DataDaReserva)
}

func TestOpsReservationReadModel(t *testing.T) {
	dbconn := getDb()
	db := DB{Conn: dbconn}
	db.MigrateSchema()
	readModel := NewOpsReservationReadModel(&db)
	ctx := context.Background()

	event := entities.ReservationSubmitted{
		Header:            entities.NewEventHeader(),
		SubmissionID:      uuid.New(),
		UserID:            7,
		CasaDaReserva:     "Ribalta",
		QuantidadePessoas: 6,
		Mesas:             "1 Mesa / 6 cadeiras",
		DataDaReserva:     "2026-10-02",
	}
	err := readModel.OnReservationSubmitted(ctx, &event)
	require.NoError(t, err)

	// redelivery is a no-op
	err = readModel.OnReservationSubmitted(ctx, &event)
	require.NoError(t, err)

	stored, err := readModel.GetByID(ctx, event.SubmissionID.String())
	require.NoError(t, err)
	assert.Equal(t, event.CasaDaReserva, stored.CasaDaReserva)
	assert.Equal(t, event.QuantidadePessoas, stored.QuantidadePessoas)

	date := "2026-10-02"
	byDate, err := readModel.GetAll(ctx, &date)
	require.NoError(t, err)
	assert.NotEmpty(t, lo.Filter(byDate, func(r entities.OpsReservation, _ int) bool {
		return r.SubmissionID == event.SubmissionID
	}))
}
