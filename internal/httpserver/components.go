package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/repo"
	"github.com/ldelvaux/pcforge/internal/service"
)

type ComponentHTTP struct {
	Svc *service.CatalogService
}

func (h *ComponentHTTP) GetComponent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	comp, err := h.Svc.GetComponent(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comp)
}

func (h *ComponentHTTP) ListComponents(c echo.Context) error {
	offset, limit, page := pagination(c)
	filter := repo.ComponentFilter{
		Type:    c.QueryParam("type"),
		Brand:   c.QueryParam("brand"),
		InStock: strings.EqualFold(c.QueryParam("in_stock"), "true"),
	}

	total, items, err := h.Svc.ListComponents(c.Request().Context(), filter, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return listResponse(c, items, total, page, limit, offset)
}

func (h *ComponentHTTP) CreateComponent(c echo.Context) error {
	var req service.UpsertComponentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	comp, err := h.Svc.CreateComponent(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comp)
}

func (h *ComponentHTTP) UpdateComponent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req service.UpsertComponentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	comp, err := h.Svc.UpdateComponent(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comp)
}

func (h *ComponentHTTP) DeleteComponent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteComponent(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
