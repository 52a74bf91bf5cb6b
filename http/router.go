package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"reservas/observability"
)

const sessionHeader = "X-Session-Id"

func NewHttpRouter(
	sessions SessionStore,
	selectedEvents SelectedEventStore,
	submitter Submitter,
	eventsClient EventsLister,
	reservationsAPI ReservationsAPI,
	usersAPI UsersAPI,
	opsReservations OpsReservationsRepository,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(otelecho.Middleware("reservas-gateway"))
	e.Use(correlationID)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler := Handler{
		sessions:        sessions,
		selectedEvents:  selectedEvents,
		submitter:       submitter,
		eventsClient:    eventsClient,
		reservationsAPI: reservationsAPI,
		usersAPI:        usersAPI,
		opsReservations: opsReservations,
	}

	e.POST("/sessions", handler.PostSessions)
	e.DELETE("/sessions", handler.DeleteSessions)
	e.GET("/events", handler.GetEvents)
	e.PUT("/selected-event", handler.PutSelectedEvent)
	e.GET("/selected-event", handler.GetSelectedEvent)
	e.POST("/reservations", handler.PostReservations)
	e.GET("/reservations", handler.GetReservations)
	e.GET("/reservations/:id", handler.GetReservationByID)
	e.GET("/users/me", handler.GetMe)
	e.PUT("/users/me", handler.PutMe)
	e.GET("/ops/reservations", handler.GetOpsReservations)
	e.GET("/ops/reservations/:id", handler.GetOpsReservationByID)

	return e
}

func correlationID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationID := c.Request().Header.Get("Correlation-ID")
		if correlationID == "" {
			correlationID = shortuuid.New()
		}

		ctx := c.Request().Context()
		ctx = observability.ContextWithCorrelationID(ctx, correlationID)
		ctx = observability.ToContext(ctx, logrus.WithFields(logrus.Fields{"correlation_id": correlationID}))
		c.SetRequest(c.Request().WithContext(ctx))

		c.Response().Header().Set("Correlation-ID", correlationID)

		return next(c)
	}
}

func sessionID(c echo.Context) string {
	return c.Request().Header.Get(sessionHeader)
}
