package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/service"
)

func TestRegisterThenLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/api/v1/register", "", service.RegisterRequest{
		Name:      "Delvaux",
		FirstName: "Laura",
		Email:     "laura@example.org",
		Password:  "a decent password",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeJSON[models.User](t, rec)
	require.NotZero(t, created.ID)
	require.NotNil(t, created.Role)
	require.Equal(t, models.RoleClient, created.Role.Name)
	// The digest never leaves the server.
	require.NotContains(t, rec.Body.String(), "password_hash")

	token := env.login(t, "laura@example.org", "a decent password")

	rec = env.request(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeJSON[models.User](t, rec)
	require.Equal(t, created.ID, me.ID)
	require.Equal(t, "laura@example.org", me.Email)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "laura@example.org", "password", models.RoleClient)

	rec := env.request(t, http.MethodPost, "/api/v1/register", "", service.RegisterRequest{
		Name:      "Delvaux",
		FirstName: "Laura",
		Email:     "laura@example.org",
		Password:  "another password",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "laura@example.org", "password", models.RoleClient)

	rec := env.request(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"email":    "laura@example.org",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/v1/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
