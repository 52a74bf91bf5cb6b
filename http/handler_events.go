package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"reservas/entities"
)

func (h *Handler) GetEvents(c echo.Context) error {
	events, err := h.eventsClient.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, events)
}

// PutSelectedEvent stores the whole event record as the session's selection.
// Always a full replace; there is no partial update.
func (h *Handler) PutSelectedEvent(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.sessions.RequireAuthenticated(ctx, sessionID(c)); err != nil {
		return unauthenticated(c)
	}

	var event entities.Event
	if err := c.Bind(&event); err != nil {
		return err
	}
	if event.ID == "" || event.CasaDoEvento == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id and casa_do_evento are required")
	}

	if err := h.selectedEvents.Set(ctx, sessionID(c), event); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetSelectedEvent(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.sessions.RequireAuthenticated(ctx, sessionID(c)); err != nil {
		return unauthenticated(c)
	}

	event, found, err := h.selectedEvents.Get(ctx, sessionID(c))
	if err != nil {
		return err
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "no event selected")
	}

	return c.JSON(http.StatusOK, event)
}
