package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/resultados"
)

// ResultadoHandler maneja el ingreso, edición y verificación de resultados.
type ResultadoHandler struct {
	uc *resultados.UseCase
}

// NewResultadoHandler construye el handler.
func NewResultadoHandler(uc *resultados.UseCase) *ResultadoHandler {
	return &ResultadoHandler{uc: uc}
}

// Contexto godoc
// @Summary      Cargar el contexto del formulario de resultados
// @Tags         resultados
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la muestra"
// @Success      200  {object}  dto.ContextoResultadoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/resultados/muestra/{id} [get]
func (h *ResultadoHandler) Contexto(c *fiber.Ctx) error {
	ctx, err := h.uc.CargarContexto(c.Context(), GetSesion(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.ContextoResultadoResponse{
		Muestra:   ctx.Muestra,
		Resultado: ctx.Resultado,
		Edicion:   ctx.Edicion,
	})
}

// Guardar godoc
// @Summary      Registrar o editar los resultados de una muestra
// @Tags         resultados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la muestra"
// @Param        body  body  dto.GuardarResultadoRequest  true  "Parámetros y observaciones"
// @Success      200   {object}  entity.Resultado
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resultados/muestra/{id} [put]
func (h *ResultadoHandler) Guardar(c *fiber.Ctx) error {
	var in dto.GuardarResultadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Guardar(c.Context(), GetSesion(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Verificar godoc
// @Summary      Verificar los resultados de una muestra
// @Tags         resultados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la muestra"
// @Param        body  body  dto.VerificarRequest  true  "Observaciones de verificación"
// @Success      200   {object}  dto.VerificacionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resultados/verificar/{id} [post]
func (h *ResultadoHandler) Verificar(c *fiber.Ctx) error {
	var in dto.VerificarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Verificar(c.Context(), GetSesion(c), c.Params("id"), in.Observaciones)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Listar godoc
// @Summary      Listar todos los resultados
// @Tags         resultados
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Resultado
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/resultados [get]
func (h *ResultadoHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.ListarResultados(c.Context(), GetSesion(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
