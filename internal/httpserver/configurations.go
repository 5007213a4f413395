package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/middleware/auth"
	"github.com/ldelvaux/pcforge/internal/service"
)

type ConfigurationHTTP struct {
	Svc *service.ConfigurationService
}

func (h *ConfigurationHTTP) ListConfigurations(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	// Admins may list everyone's configurations with ?all=true.
	scope := callerID
	if strings.EqualFold(c.QueryParam("all"), "true") && auth.CallerIsAdmin(c) {
		scope = 0
	}

	offset, limit, page := pagination(c)
	total, items, err := h.Svc.ListConfigurations(c.Request().Context(), scope, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return listResponse(c, items, total, page, limit, offset)
}

func (h *ConfigurationHTTP) GetConfiguration(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	cfg, err := h.Svc.GetConfiguration(c.Request().Context(), id, callerID, auth.CallerIsAdmin(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *ConfigurationHTTP) CreateConfiguration(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	var req service.UpsertConfigurationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cfg, err := h.Svc.CreateConfiguration(c.Request().Context(), callerID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cfg)
}

func (h *ConfigurationHTTP) UpdateConfiguration(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	var req service.UpsertConfigurationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cfg, err := h.Svc.UpdateConfiguration(c.Request().Context(), id, callerID, auth.CallerIsAdmin(c), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *ConfigurationHTTP) DeleteConfiguration(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteConfiguration(c.Request().Context(), id, callerID, auth.CallerIsAdmin(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
