package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nexaa/auth-service/internal/core/ports"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// AdminHandler serves the admin-only view over the authentication audit trail.
type AdminHandler struct {
	audit ports.AuditRepository
}

func NewAdminHandler(audit ports.AuditRepository) *AdminHandler {
	return &AdminHandler{audit: audit}
}

// ListEvents returns recent auth events, newest first.
//
// @Summary      List recent auth events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum events to return (default 50, max 500)"
// @Success      200    {object}  listAuthEventsResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /auth/admin/events [get]
func (h *AdminHandler) ListEvents(c echo.Context) error {
	limit := int64(defaultEventLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
		}
		if n > maxEventLimit {
			n = maxEventLimit
		}
		limit = n
	}

	events, err := h.audit.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	out := make([]authEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, authEventResponse{
			Kind:      string(ev.Kind),
			UserID:    ev.UserID,
			Email:     ev.Email,
			Timestamp: ev.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, listAuthEventsResponse{Data: out})
}
