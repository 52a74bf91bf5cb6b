package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetMe(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.sessions.RequireAuthenticated(ctx, sessionID(c))
	if err != nil {
		return unauthenticated(c)
	}

	profile, err := h.usersAPI.Me(ctx, user.Token)
	if err != nil {
		return h.upstreamError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// PutMe forwards a partial profile update. The body is multipart form data;
// only the provided fields reach the upstream.
func (h *Handler) PutMe(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.sessions.RequireAuthenticated(ctx, sessionID(c))
	if err != nil {
		return unauthenticated(c)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expected multipart form data")
	}

	fields := map[string]string{}
	for name, values := range form.Value {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}
	if len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no fields to update")
	}

	if err := h.usersAPI.UpdateMe(ctx, user.Token, fields); err != nil {
		return h.upstreamError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
