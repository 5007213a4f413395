package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type TokenService struct {
	JWTSecret []byte
}

// RequireLogin rejects requests without a valid bearer token and stores the
// caller's identity on the echo context.
func (t *TokenService) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := bearerClaims(c, t.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		if err := setUserContext(c, claims); err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return next(c)
	}
}
