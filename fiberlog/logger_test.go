package fiberlog

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagMethod, TagPath, TagStatus, TagBody, TagResBody},
	}))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/user/login", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).SendString("denied")
	})

	t.Run(`success is info`, func(t *testing.T) {
		hook.Reset()
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, log.InfoLevel, entry.Level)
		require.Equal(t, "GET", entry.Data[TagMethod])
		require.Equal(t, "/ok", entry.Data[TagPath])
		require.Equal(t, fiber.StatusOK, entry.Data[TagStatus])
		_, hasResBody := entry.Data[TagResBody]
		require.False(t, hasResBody)
	})
	t.Run(`failure is warn without sensitive body`, func(t *testing.T) {
		hook.Reset()
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/user/login", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, log.WarnLevel, entry.Level)
		require.Equal(t, "denied", entry.Data[TagResBody])
		_, hasBody := entry.Data[TagBody]
		require.False(t, hasBody)
	})
}
