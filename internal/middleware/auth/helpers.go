package auth

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/tokens"
)

const (
	ctxUserID = "userID"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// HasRole is the single role-membership check used by every protected
// endpoint. Comparison is case-insensitive.
func HasRole(claimed, required string) bool {
	return strings.EqualFold(claimed, required)
}

func bearerClaims(c echo.Context, secret []byte) (*tokens.AccessClaims, error) {
	raw := c.Request().Header.Get(echo.HeaderAuthorization)
	if raw == "" {
		return nil, errors.New("missing authorization header")
	}

	const prefix = "Bearer "
	if len(raw) > len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) {
		raw = raw[len(prefix):]
	}

	return tokens.AccessClaimsFromToken(raw, secret)
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) error {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return errors.New("invalid subject claim")
	}
	c.Set(ctxUserID, uint(id))
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxRole, claims.Role)
	return nil
}

// CallerID returns the authenticated user id stored by the middleware.
func CallerID(c echo.Context) (uint, error) {
	v, ok := c.Get(ctxUserID).(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return v, nil
}

// CallerIsAdmin reports whether the authenticated caller carries the admin
// role claim.
func CallerIsAdmin(c echo.Context) bool {
	role, _ := c.Get(ctxRole).(string)
	return HasRole(role, models.RoleAdmin)
}
