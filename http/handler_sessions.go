package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"reservas/entities"
	"reservas/observability"
	"reservas/session"
)

type createSessionRequest struct {
	UserID    int    `json:"user_id"`
	AuthToken string `json:"auth_token"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

// PostSessions bootstraps a session from externally-issued credentials. The
// gateway never issues tokens itself.
func (h *Handler) PostSessions(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	id, err := h.sessions.Create(c.Request().Context(), entities.Session{
		UserID:    req.UserID,
		AuthToken: req.AuthToken,
	})
	if errors.Is(err, session.ErrUnauthenticated) {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and auth_token are required")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createSessionResponse{SessionID: id})
}

// DeleteSessions clears the session and its selected event together, so a
// logout never leaves a dangling snapshot.
func (h *Handler) DeleteSessions(c echo.Context) error {
	ctx := c.Request().Context()
	id := sessionID(c)

	if err := h.sessions.Clear(ctx, id); err != nil {
		return err
	}
	if err := h.selectedEvents.Clear(ctx, id); err != nil {
		observability.FromContext(ctx).WithError(err).Warn("Could not clear selected event")
	}

	return c.NoContent(http.StatusNoContent)
}
