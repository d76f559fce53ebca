package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusmerch/store/internal/config"
	"github.com/campusmerch/store/internal/handler"
	"github.com/campusmerch/store/internal/repository"
	"github.com/campusmerch/store/internal/router"
	"github.com/campusmerch/store/internal/store"
)

// testApp is a fully wired server over a throwaway db file. No redis, no
// broker: the cache slot gets a pass-through middleware and event
// publication stays off.
type testApp struct {
	e     *echo.Echo
	cfg   config.Config
	users *repository.UserRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := config.Config{
		Env:            "test",
		DBFile:         filepath.Join(t.TempDir(), "db.json"),
		JWTSecret:      "handler-test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
	st := store.New(cfg.DBFile)
	users := repository.NewUserRepo(st)
	products := repository.NewProductRepo(st)
	orders := repository.NewOrderRepo(st)

	e := echo.New()
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	router.RegisterRoutes(e)
	router.RegisterUsers(e, handler.NewAuthHandler(cfg, users))
	router.RegisterProducts(e, handler.NewProductHandler(products), cfg.JWTSecret, passthrough)
	router.RegisterOrders(e, handler.NewOrderHandler(orders, false), cfg.JWTSecret)
	return &testApp{e: e, cfg: cfg, users: users}
}

func (a *testApp) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// signup registers a user and returns the decoded 201 response.
func (a *testApp) signup(t *testing.T, username, email, password, role string) map[string]any {
	t.Helper()
	body := map[string]any{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}
	if role == "storekeeper" {
		body["storeName"] = username + "'s store"
		body["location"] = "Building A"
	}
	rec := a.do(t, http.MethodPost, "/api/users/signup", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, "signup body: %s", rec.Body.String())
	return decode(t, rec)
}

func userID(t *testing.T, resp map[string]any) string {
	t.Helper()
	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	id, ok := user["id"].(string)
	require.True(t, ok)
	return id
}

func accessToken(t *testing.T, resp map[string]any) string {
	t.Helper()
	tok, ok := resp["accessToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, tok)
	return tok
}

func refreshToken(t *testing.T, resp map[string]any) string {
	t.Helper()
	tok, ok := resp["refreshToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, tok)
	return tok
}
