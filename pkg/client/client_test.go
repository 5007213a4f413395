package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginStoresSession(t *testing.T) {
	token := signedToken(t, "client")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("email") != "laura@example.org" || r.PostFormValue("password") != "password" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}))
	defer srv.Close()

	session := NewSession(t.TempDir())
	c := New(srv.URL, session)

	require.NoError(t, c.Login(context.Background(), "laura@example.org", "password"))
	require.True(t, session.IsAuthenticated())
	require.Equal(t, uint(42), session.User.ID)

	err := c.Login(context.Background(), "laura@example.org", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClientAttachesBearerToken(t *testing.T) {
	token := signedToken(t, "client")

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(User{ID: 42, Email: "laura@example.org"})
	}))
	defer srv.Close()

	session := NewSession(t.TempDir())
	require.NoError(t, session.SetToken(token))
	c := New(srv.URL, session)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint(42), me.ID)
	require.Equal(t, "Bearer "+token, gotAuth)
}

func TestClientSideComponentFilters(t *testing.T) {
	catalog := []Component{
		{ID: 1, Type: "cpu", Brand: "AMD", Stock: 3},
		{ID: 2, Type: "gpu", Brand: "NVIDIA", Stock: 0},
		{ID: 3, Type: "cpu", Brand: "Intel", Stock: 1},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": catalog,
			"meta": ListMeta{Page: 1, Total: int64(len(catalog))},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession(t.TempDir()))

	cpus, err := c.ComponentsByType(context.Background(), "CPU")
	require.NoError(t, err)
	require.Len(t, cpus, 2)

	inStock, err := c.ComponentsInStock(context.Background())
	require.NoError(t, err)
	require.Len(t, inStock, 2)

	amd, err := c.ComponentsByBrand(context.Background(), "amd")
	require.NoError(t, err)
	require.Len(t, amd, 1)
	require.Equal(t, uint(1), amd[0].ID)
}

func TestAPIErrorMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession(t.TempDir()))

	_, err := c.Component(context.Background(), 999)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "not found")
}
