package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/hash"
	"github.com/ldelvaux/pcforge/internal/middleware/auth"
	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/repo"
	"github.com/ldelvaux/pcforge/internal/search"
	"github.com/ldelvaux/pcforge/internal/service"
	"github.com/shopspring/decimal"
)

var testSecret = []byte("httpserver-test-secret")

type testEnv struct {
	e    *echo.Echo
	repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvES(t, nil)
}

// newTestEnvES wires the router with an elasticsearch client (nil makes the
// search endpoint report itself unavailable).
func newTestEnvES(t *testing.T, es *elasticsearch.Client) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	r := repo.New(db)
	require.NoError(t, r.Migrate(context.Background()))

	authSvc := &service.AuthService{Repo: r, JWTSecret: testSecret}
	userSvc := &service.UserService{Repo: r}
	catalogSvc := &service.CatalogService{Repo: r}
	configSvc := &service.ConfigurationService{Repo: r}
	addressSvc := &service.AddressService{Repo: r}
	orderSvc := &service.OrderService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		Auth:           &AuthHTTP{Auth: authSvc, Users: userSvc},
		Users:          &UserHTTP{Svc: userSvc},
		Components:     &ComponentHTTP{Svc: catalogSvc},
		Configurations: &ConfigurationHTTP{Svc: configSvc},
		Addresses:      &AddressHTTP{Svc: addressSvc},
		Orders:         &OrderHTTP{Svc: orderSvc},
		Search:         &SearchHTTP{ES: es, Index: search.ComponentIndex},
		Tokens:         &auth.TokenService{JWTSecret: testSecret},
	})

	return &testEnv{e: e, repo: r}
}

// request sends a JSON request through the full router.
func (env *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// login posts form-encoded credentials, the way the SPA does.
func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func (env *testEnv) seedUser(t *testing.T, email, password, roleName string) *models.User {
	t.Helper()

	role, err := env.repo.GetRoleByName(context.Background(), roleName)
	require.NoError(t, err)

	digest, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test",
		FirstName:    "User",
		Email:        email,
		PasswordHash: digest,
		RoleID:       role.ID,
	}
	require.NoError(t, env.repo.CreateUser(context.Background(), user))
	user.Role = role
	return user
}

func (env *testEnv) seedComponent(t *testing.T, typ, brand, model, price string, stock, score int) *models.Component {
	t.Helper()

	p, err := decimal.NewFromString(price)
	require.NoError(t, err)

	comp := &models.Component{Type: typ, Brand: brand, Model: model, Price: p, Stock: stock, Score: score}
	require.NoError(t, env.repo.CreateComponent(context.Background(), comp))
	return comp
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
