package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/aqualab/aqualab-api/internal/interfaces/http"
	"github.com/aqualab/aqualab-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests LoggingMiddleware — la petición pasa intacta
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func TestLoggingMiddleware_NoAlteraLaRespuesta(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.LoggingMiddleware(testLogger()))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusAccepted).SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))
}

func TestLoggingMiddleware_PropagaElError(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.LoggingMiddleware(testLogger()))
	app.Get("/falla", func(c *fiber.Ctx) error {
		return fiber.ErrServiceUnavailable
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/falla", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
