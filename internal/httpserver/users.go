package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/middleware/auth"
	"github.com/ldelvaux/pcforge/internal/service"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	offset, limit, page := pagination(c)
	total, users, err := h.Svc.ListUsers(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(err)
	}
	return listResponse(c, users, total, page, limit, offset)
}

// GetUser serves a user's own record, or any record for an admin.
func (h *UserHTTP) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	if id != callerID && !auth.CallerIsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "cannot read another user")
	}

	user, err := h.Svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) CreateUser(c echo.Context) error {
	var req service.UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.CreateUser(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHTTP) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}
	if id != callerID && !auth.CallerIsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "cannot update another user")
	}

	var req service.UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateUser(c.Request().Context(), id, req, auth.CallerIsAdmin(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteUser(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
