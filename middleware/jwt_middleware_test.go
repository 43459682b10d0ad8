package middleware

import (
	"collab-backend/config"
	authhandler "collab-backend/lib/auth"
	authutils "collab-backend/lib/utils/auth-utils"
	authapimodels "collab-backend/models/api/auth"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type tokenCheck struct {
	active  bool
	checked *string
}

func (a tokenCheck) Login(email, password string) (authapimodels.JWTResponse, error) {
	return authapimodels.JWTResponse{}, nil
}

func (a tokenCheck) IsTokenActive(token string) (bool, error) {
	*a.checked = token
	return a.active, nil
}

func (a tokenCheck) Logout(token string) error {
	return nil
}

func (a tokenCheck) LogoutAll(userID string) error {
	return nil
}

func (a tokenCheck) CleanupExpired(now time.Time) (tokens, resetCodes int64, err error) {
	return 0, 0, nil
}

func newAuthApp(t *testing.T, active bool) (*fiber.App, string, *string) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	config.Conf.Auth.CookieName = "authorization"
	checked := new(string)
	authhandler.Instance = tokenCheck{active: active, checked: checked}

	token, _, err := authutils.GetToken("user-1", "john", "john@mail.com")
	require.Nil(t, err)

	app := fiber.New()
	app.Get("/me", AuthorizationRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetUserID(ctx))
	})
	return app, token, checked
}

func TestAuthorizationRequired(t *testing.T) {
	t.Run(`bearer header`, func(t *testing.T) {
		app, token, checked := newAuthApp(t, true)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.Nil(t, err)
		require.Equal(t, "user-1", string(body))
		require.Equal(t, token, *checked)
	})
	t.Run(`cookie`, func(t *testing.T) {
		app, token, checked := newAuthApp(t, true)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "authorization", Value: token})
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, token, *checked)
	})
	t.Run(`header without scheme`, func(t *testing.T) {
		app, token, _ := newAuthApp(t, true)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
	t.Run(`no token`, func(t *testing.T) {
		app, _, _ := newAuthApp(t, true)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
	t.Run(`wrong signature`, func(t *testing.T) {
		app, token, _ := newAuthApp(t, true)
		config.Conf.Auth.JWTSecret = "other-secret"
		other, _, err := authutils.GetToken("user-1", "john", "john@mail.com")
		require.Nil(t, err)
		require.NotEqual(t, token, other)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+other)
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
	t.Run(`revoked token`, func(t *testing.T) {
		app, token, _ := newAuthApp(t, false)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
