package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/logging"
	"github.com/ldelvaux/pcforge/internal/middleware/auth"
	"github.com/ldelvaux/pcforge/internal/service"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

// Checkout accepts the whole cart and creates all orders or none. A failed
// checkout still reports what happened to each line.
func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	var req service.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	result, err := h.Svc.Checkout(ctx, callerID, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) && result != nil {
			l.Warn("checkout_rejected", "status", 400, "userID", callerID)
			return c.JSON(http.StatusBadRequest, result)
		}
		return httpError(err)
	}

	l.Info("checkout_success", "userID", callerID, "orders", len(result.Orders))
	return c.JSON(http.StatusCreated, result)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	scope := callerID
	if strings.EqualFold(c.QueryParam("all"), "true") && auth.CallerIsAdmin(c) {
		scope = 0
	}

	offset, limit, page := pagination(c)
	total, orders, err := h.Svc.ListOrders(c.Request().Context(), scope, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return listResponse(c, orders, total, page, limit, offset)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrder(c.Request().Context(), id, callerID, auth.CallerIsAdmin(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req service.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateOrder(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteOrder(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
