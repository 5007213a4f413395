package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/service"
)

type AddressHTTP struct {
	Svc *service.AddressService
}

func (h *AddressHTTP) ListAddresses(c echo.Context) error {
	offset, limit, page := pagination(c)
	total, items, err := h.Svc.ListAddresses(c.Request().Context(), offset, limit)
	if err != nil {
		return httpError(err)
	}
	return listResponse(c, items, total, page, limit, offset)
}

func (h *AddressHTTP) GetAddress(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	addr, err := h.Svc.GetAddress(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHTTP) CreateAddress(c echo.Context) error {
	var req service.UpsertAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.CreateAddress(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, addr)
}

func (h *AddressHTTP) UpdateAddress(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req service.UpsertAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	addr, err := h.Svc.UpdateAddress(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, addr)
}

func (h *AddressHTTP) DeleteAddress(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteAddress(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
