package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aqualab/aqualab-api/pkg/logger"
)

// LoggingMiddleware registra cada petición atendida: método, ruta, estado y
// latencia. Las respuestas 5xx suben a nivel error.
func LoggingMiddleware(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if err != nil || status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(inicio)).
			Msg("petición atendida")

		return err
	}
}
