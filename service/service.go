package service

import (
	"context"
	"net/http"
	"time"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"reservas/api"
	"reservas/db"
	"reservas/entities"
	reservasHttp "reservas/http"
	"reservas/message"
	"reservas/message/event"
	"reservas/message/outbox"
	"reservas/observability"
	"reservas/reservation"
	"reservas/selectedevent"
	"reservas/session"
)

const (
	sessionTTL     = 24 * time.Hour
	eventsCacheTTL = time.Minute
)

func init() {
	observability.InitLogging(logrus.InfoLevel)
}

// ReservationsService is the full upstream reservations surface: submission
// for the gateway's reservation flow, lookup for the passthrough endpoints.
type ReservationsService interface {
	PlaceReservation(ctx context.Context, request entities.ReservationRequest) error
	CreateForEvent(ctx context.Context, request entities.ReservationRequest) error
	GetByID(ctx context.Context, reservationID int) (entities.Reservation, error)
	List(ctx context.Context) ([]entities.Reservation, error)
}

type EventsService interface {
	List(ctx context.Context) ([]entities.Event, error)
}

type UsersService interface {
	Me(ctx context.Context, token string) (entities.User, error)
	UpdateMe(ctx context.Context, token string, fields map[string]string) error
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	addr            string
}

func New(
	redisClient *redis.Client,
	conn db.DB,
	reservationsService ReservationsService,
	eventsService EventsService,
	usersService UsersService,
	port string,
) Service {
	watermillLogger := observability.NewWatermill(observability.FromContext(context.Background()))

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)

	logRepo := db.NewReservationLogRepository(&conn)
	opsReadModel := db.NewOpsReservationReadModel(&conn)
	dataLakeRepo := db.NewDataLakeRepository(&conn)

	eventsHandler := event.NewHandler(opsReadModel, dataLakeRepo)
	eventProcessorConfig := event.NewProcessorConfig(redisClient, watermillLogger)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	watermillRouter := message.NewWatermillRouter(
		pgSubscriber,
		redisPublisher,
		eventProcessorConfig,
		eventsHandler,
		watermillLogger,
	)

	sessionStore := session.NewStore(redisClient, sessionTTL)
	selectedEventStore := selectedevent.NewStore(redisClient)
	cachedEvents := api.NewCachedEventsClient(eventsService, redisClient, eventsCacheTTL)

	submitter := reservation.NewSubmitter(
		sessionStore,
		selectedEventStore,
		reservationsService,
		logRepo,
	)

	echoRouter := reservasHttp.NewHttpRouter(
		sessionStore,
		selectedEventStore,
		submitter,
		cachedEvents,
		reservationsService,
		usersService,
		opsReadModel,
	)

	return Service{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		addr:            ":" + port,
	}
}

func (s Service) Run(
	ctx context.Context,
) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// we don't want to start HTTP server before Watermill router (so service won't be healthy before it's ready)
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.addr)
		if err != nil && err != http.ErrServerClosed {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
