package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/domain"
)

// responderError traduce los errores de dominio a estado HTTP + ErrorResponse.
// El mensaje es el del error; el código es estable para que los clientes no
// dependan del texto.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidacion):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrYaVerificado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "YA_VERIFICADO", Message: err.Error()})
	case errors.Is(err, domain.ErrEstadoInvalido):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ESTADO_INVALIDO", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrPermisoDenegado):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrSesionExpirada):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESION_EXPIRADA", Message: err.Error()})
	case errors.Is(err, domain.ErrRemoto):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
