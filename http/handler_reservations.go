package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"reservas/api"
	"reservas/entities"
	"reservas/observability"
	"reservas/reservation"
)

type submitReservationRequest struct {
	VenueName        string `json:"venue_name"`
	UseSelectedEvent bool   `json:"use_selected_event"`
	PeopleCount      int    `json:"people_count"`
	TableConfig      string `json:"table_config"`
	Date             string `json:"date"`
}

func (h *Handler) PostReservations(c echo.Context) error {
	var req submitReservationRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	outcome := h.submitter.Submit(c.Request().Context(), sessionID(c), reservation.SubmitRequest{
		VenueName:        req.VenueName,
		UseSelectedEvent: req.UseSelectedEvent,
		PeopleCount:      req.PeopleCount,
		TableConfig:      req.TableConfig,
		Date:             req.Date,
	})

	return c.JSON(outcomeStatus(outcome), outcome)
}

// outcomeStatus maps the submission outcome onto an HTTP status. The outcome
// body itself is authoritative; the status is for clients that only look at
// status codes.
func outcomeStatus(outcome entities.ReservationOutcome) int {
	switch outcome.State {
	case entities.OutcomeSucceeded:
		return http.StatusCreated
	case entities.OutcomePending:
		return http.StatusAccepted
	}

	switch outcome.Reason {
	case entities.ReasonUnauthenticated:
		return http.StatusUnauthorized
	case entities.ReasonServerRejected:
		return http.StatusBadGateway
	case entities.ReasonNetworkError:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadRequest
	}
}

// GetReservations lists the session user's reservations. The upstream listing
// is not scoped by user, so the gateway filters it.
func (h *Handler) GetReservations(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.sessions.RequireAuthenticated(ctx, sessionID(c))
	if err != nil {
		return unauthenticated(c)
	}

	reservations, err := h.reservationsAPI.List(ctx)
	if err != nil {
		return h.upstreamError(c, err)
	}

	mine := lo.Filter(reservations, func(r entities.Reservation, _ int) bool {
		return r.UserID == user.UserID
	})

	return c.JSON(http.StatusOK, mine)
}

func (h *Handler) GetReservationByID(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.sessions.RequireAuthenticated(ctx, sessionID(c)); err != nil {
		return unauthenticated(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "reservation id must be numeric")
	}

	res, err := h.reservationsAPI.GetByID(ctx, id)
	if err != nil {
		return h.upstreamError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetOpsReservations(c echo.Context) error {
	date := c.QueryParam("reservation_date")

	resp, err := h.opsReservations.GetAll(c.Request().Context(), &date)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetOpsReservationByID(c echo.Context) error {
	resp, err := h.opsReservations.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, entities.FailedOutcome(
		entities.ReasonUnauthenticated, "faça login para continuar"))
}

// upstreamError maps upstream client errors onto gateway responses. A 401
// means the token died upstream, so the session is dropped here: every
// passthrough endpoint gets the clear-on-401 behavior, not just the profile
// ones.
func (h *Handler) upstreamError(c echo.Context, err error) error {
	var rejected *api.ServerRejectedError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		ctx := c.Request().Context()
		if clearErr := h.sessions.Clear(ctx, sessionID(c)); clearErr != nil {
			observability.FromContext(ctx).WithError(clearErr).Error("Could not clear rejected session")
		}
		return unauthenticated(c)
	case errors.As(err, &rejected):
		return echo.NewHTTPError(http.StatusBadGateway, rejected.Message)
	default:
		return err
	}
}
