package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/muestras"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// MuestraHandler maneja la consulta de muestras, catálogos y cambios de estado.
type MuestraHandler struct {
	uc *muestras.UseCase
}

// NewMuestraHandler construye el handler.
func NewMuestraHandler(uc *muestras.UseCase) *MuestraHandler {
	return &MuestraHandler{uc: uc}
}

// paramDecodificado devuelve el parámetro de ruta con el percent-encoding
// resuelto ("En%20análisis" → "En análisis").
func paramDecodificado(c *fiber.Ctx, nombre string) string {
	v := c.Params(nombre)
	if d, err := url.PathUnescape(v); err == nil {
		return d
	}
	return v
}

// Listar godoc
// @Summary      Listar muestras visibles para la sesión
// @Tags         muestras
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Muestra
// @Router       /api/muestras [get]
func (h *MuestraHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.Listar(c.Context(), GetSesion(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Obtener godoc
// @Summary      Obtener una muestra por ID
// @Tags         muestras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la muestra"
// @Success      200  {object}  entity.Muestra
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/muestras/{id} [get]
func (h *MuestraHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Context(), GetSesion(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListarPorTipo godoc
// @Summary      Listar muestras por tipo
// @Tags         muestras
// @Security     Bearer
// @Produce      json
// @Param        tipo  path  string  true  "Agua o Suelo"
// @Success      200   {array}   entity.Muestra
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/muestras/tipo/{tipo} [get]
func (h *MuestraHandler) ListarPorTipo(c *fiber.Ctx) error {
	out, err := h.uc.ListarPorTipo(c.Context(), GetSesion(c), paramDecodificado(c, "tipo"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListarPorEstado godoc
// @Summary      Listar muestras por estado
// @Tags         muestras
// @Security     Bearer
// @Produce      json
// @Param        estado  path  string  true  "Estado del ciclo de vida"
// @Success      200     {array}   entity.Muestra
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/muestras/estado/{estado} [get]
func (h *MuestraHandler) ListarPorEstado(c *fiber.Ctx) error {
	estado := entity.EstadoMuestra(paramDecodificado(c, "estado"))
	out, err := h.uc.ListarPorEstado(c.Context(), GetSesion(c), estado)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// cambiarEstadoRequest cuerpo del cambio de estado explícito.
type cambiarEstadoRequest struct {
	Estado        entity.EstadoMuestra `json:"estado"`
	Observaciones string               `json:"observaciones,omitempty"`
}

// CambiarEstado godoc
// @Summary      Cambiar el estado de una muestra
// @Tags         muestras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la muestra"
// @Param        body  body  cambiarEstadoRequest  true  "Estado destino y observaciones"
// @Success      200   {object}  entity.Muestra
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/muestras/{id}/cambiar-estado [post]
func (h *MuestraHandler) CambiarEstado(c *fiber.Ctx) error {
	var in cambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CambiarEstado(c.Context(), GetSesion(c), c.Params("id"), in.Estado, in.Observaciones)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Historial godoc
// @Summary      Historial de cambios de estado de una muestra
// @Tags         muestras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la muestra"
// @Success      200  {array}   entity.CambioEstado
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/muestras/{id}/historial [get]
func (h *MuestraHandler) Historial(c *fiber.Ctx) error {
	out, err := h.uc.Historial(c.Context(), GetSesion(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// TiposAgua godoc
// @Summary      Catálogo de tipos de agua
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.TipoDeAgua
// @Router       /api/catalogos/tipos-agua [get]
func (h *MuestraHandler) TiposAgua(c *fiber.Ctx) error {
	out, err := h.uc.TiposAgua(c.Context(), GetSesion(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CatalogoAnalisis godoc
// @Summary      Catálogo de análisis por tipo de muestra
// @Tags         catalogos
// @Security     Bearer
// @Produce      json
// @Param        tipo  path  string  true  "Agua o Suelo"
// @Success      200   {array}   catalogo.Categoria
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalogos/analisis/{tipo} [get]
func (h *MuestraHandler) CatalogoAnalisis(c *fiber.Ctx) error {
	out, err := h.uc.CatalogoAnalisis(paramDecodificado(c, "tipo"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
