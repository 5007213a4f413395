package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/logging"
	"github.com/ldelvaux/pcforge/internal/middleware/auth"
	"github.com/ldelvaux/pcforge/internal/service"
)

type AuthHTTP struct {
	Auth  *service.AuthService
	Users *service.UserService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req service.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Auth.Register(ctx, req)
	if err != nil {
		return httpError(err)
	}

	l.Info("register_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, user)
}

// Login accepts both the SPA's form-encoded post and JSON.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, user, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return err
	}

	user, err := h.Users.GetUser(c.Request().Context(), callerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}
