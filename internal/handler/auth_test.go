package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmerch/store/internal/utils"
)

func TestSignupNeverLeaksCredentialFields(t *testing.T) {
	app := newTestApp(t)
	resp := app.signup(t, "alice", "alice@campus.edu", "secret1", "student")

	user, ok := resp["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "student", user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "refreshToken")
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)
	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing fields", map[string]any{"username": "alice"}},
		{"unknown role", map[string]any{
			"username": "alice", "email": "alice@campus.edu", "password": "secret1", "role": "admin",
		}},
		{"bad email", map[string]any{
			"username": "alice", "email": "not-an-email", "password": "secret1", "role": "student",
		}},
		{"short password", map[string]any{
			"username": "alice", "email": "alice@campus.edu", "password": "12345", "role": "student",
		}},
		{"storekeeper without store fields", map[string]any{
			"username": "keeper", "email": "keeper@campus.edu", "password": "secret1", "role": "storekeeper",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/users/signup", tc.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@campus.edu", "secret1", "student")

	rec := app.do(t, http.MethodPost, "/api/users/signup", map[string]any{
		"username": "ALICE", "email": "other@campus.edu", "password": "secret1", "role": "student",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")

	rec = app.do(t, http.MethodPost, "/api/users/signup", map[string]any{
		"username": "bob", "email": "Alice@Campus.edu", "password": "secret1", "role": "student",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

func TestSigninFailureIsUniform(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@campus.edu", "secret1", "student")

	unknown := app.do(t, http.MethodPost, "/api/users/signin", map[string]any{
		"email": "nobody@campus.edu", "password": "secret1",
	}, "")
	wrongPassword := app.do(t, http.MethodPost, "/api/users/signin", map[string]any{
		"email": "alice@campus.edu", "password": "wrong-password",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	// Neither the status nor the body may reveal which credential was wrong.
	assert.Equal(t, unknown.Body.String(), wrongPassword.Body.String())
}

func TestSigninIssuesWorkingTokens(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@campus.edu", "secret1", "student")

	rec := app.do(t, http.MethodPost, "/api/users/signin", map[string]any{
		"email": "alice@campus.edu", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.NotEqual(t, accessToken(t, resp), refreshToken(t, resp))

	claims, err := utils.VerifyToken(app.cfg.JWTSecret, accessToken(t, resp))
	require.NoError(t, err)
	assert.Equal(t, userID(t, resp), claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestRefreshLifecycle(t *testing.T) {
	app := newTestApp(t)
	resp := app.signup(t, "alice", "alice@campus.edu", "secret1", "student")
	refresh := refreshToken(t, resp)

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/users/refresh", map[string]any{"refreshToken": refresh}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		claims, err := utils.VerifyToken(app.cfg.JWTSecret, body["accessToken"].(string))
		require.NoError(t, err)
		assert.Equal(t, userID(t, resp), claims.UserID)
		assert.Equal(t, "student", claims.Role)
		assert.NotContains(t, body, "refreshToken", "refresh does not rotate the refresh token")
	})

	t.Run("missing token is a 400", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/users/refresh", map[string]any{}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("well-formed but unstored token is a 403", func(t *testing.T) {
		foreign, err := utils.NewRefreshToken(app.cfg.JWTSecret, "someone-else", 7)
		require.NoError(t, err)
		rec := app.do(t, http.MethodPost, "/api/users/refresh", map[string]any{"refreshToken": foreign.Token}, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("stored token that fails verification is a 403", func(t *testing.T) {
		// Plant a token signed under a different key directly in the record:
		// the store match succeeds but cryptographic verification must not.
		forged, err := utils.NewRefreshToken("not-the-server-secret", userID(t, resp), 7)
		require.NoError(t, err)
		require.NoError(t, app.users.SaveRefreshToken(context.Background(), userID(t, resp), forged.Token))
		rec := app.do(t, http.MethodPost, "/api/users/refresh", map[string]any{"refreshToken": forged.Token}, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestNewSigninInvalidatesPreviousRefreshToken(t *testing.T) {
	app := newTestApp(t)
	first := app.signup(t, "alice", "alice@campus.edu", "secret1", "student")
	old := refreshToken(t, first)

	rec := app.do(t, http.MethodPost, "/api/users/signin", map[string]any{
		"email": "alice@campus.edu", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	fresh := refreshToken(t, decode(t, rec))

	rec = app.do(t, http.MethodPost, "/api/users/refresh", map[string]any{"refreshToken": old}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code, "only the latest refresh token stays live")

	rec = app.do(t, http.MethodPost, "/api/users/refresh", map[string]any{"refreshToken": fresh}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	app := newTestApp(t)
	resp := app.signup(t, "alice", "alice@campus.edu", "secret1", "student")
	refresh := refreshToken(t, resp)

	rec := app.do(t, http.MethodPost, "/api/users/logout", map[string]any{"refreshToken": refresh}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/users/refresh", map[string]any{"refreshToken": refresh}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A second logout with the same token no longer matches anything.
	rec = app.do(t, http.MethodPost, "/api/users/logout", map[string]any{"refreshToken": refresh}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileLookup(t *testing.T) {
	app := newTestApp(t)
	resp := app.signup(t, "keeper", "keeper@campus.edu", "secret1", "storekeeper")

	rec := app.do(t, http.MethodGet, "/api/users/user/"+userID(t, resp), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	user := body["user"].(map[string]any)
	assert.Equal(t, "keeper", user["username"])
	assert.Equal(t, "keeper's store", user["storeName"])
	assert.NotContains(t, user, "password")

	rec = app.do(t, http.MethodGet, "/api/users/user/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpiredAccessTokenRejectedOnGuardedRoute(t *testing.T) {
	app := newTestApp(t)
	resp := app.signup(t, "keeper", "keeper@campus.edu", "secret1", "storekeeper")

	expired, err := utils.NewAccessToken(app.cfg.JWTSecret, userID(t, resp), "storekeeper", -1)
	require.NoError(t, err)
	rec := app.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": "Hoodie", "price": 25, "storeKeeperId": userID(t, resp),
	}, expired.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
