package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ldelvaux/pcforge/internal/models"
)

// AdminOnly gates destructive and listing operations behind the admin role.
// A valid token with the wrong role gets 403, not 401.
func (t *TokenService) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := bearerClaims(c, t.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		if !HasRole(claims.Role, models.RoleAdmin) {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		if err := setUserContext(c, claims); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return next(c)
	}
}
