package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOverrideApp() *fiber.App {
	app := fiber.New()
	app.Use(MethodOverride())

	app.Post("/applicants/1", func(c *fiber.Ctx) error { return c.SendString("post") })
	app.Patch("/applicants/1", func(c *fiber.Ctx) error { return c.SendString("patch") })
	app.Delete("/applicants/1", func(c *fiber.Ctx) error { return c.SendString("delete") })
	app.Get("/applicants/1", func(c *fiber.Ctx) error { return c.SendString("get") })
	return app
}

func TestMethodOverride(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		want   string
	}{
		{"patch from form", fiber.MethodPost, "_method=patch&applicant%5Bname%5D=x", "patch"},
		{"delete from form", fiber.MethodPost, "_method=DELETE", "delete"},
		{"no override", fiber.MethodPost, "applicant%5Bname%5D=x", "post"},
		{"unsupported override", fiber.MethodPost, "_method=get", "post"},
		{"only post is overridden", fiber.MethodGet, "", "get"},
	}

	app := newOverrideApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/applicants/1", strings.NewReader(tt.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

			resp, err := app.Test(req)
			require.NoError(t, err)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "req-1")
		return c.Next()
	})
	app.Use(RequestLogger(log))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Applicant not found")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, fiber.StatusNotFound, entry.Data["status"])
	assert.Equal(t, "/missing", entry.Data["path"])
}
