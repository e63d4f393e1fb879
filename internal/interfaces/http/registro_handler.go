package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/registro"
)

// RegistroHandler maneja el flujo de registro de muestras: borrador, cliente,
// campos, firmas y envío final.
type RegistroHandler struct {
	uc *registro.UseCase
}

// NewRegistroHandler construye el handler.
func NewRegistroHandler(uc *registro.UseCase) *RegistroHandler {
	return &RegistroHandler{uc: uc}
}

// CrearBorrador godoc
// @Summary      Abrir un borrador de registro
// @Tags         registro
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.BorradorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/registro/borradores [post]
func (h *RegistroHandler) CrearBorrador(c *fiber.Ctx) error {
	b, err := h.uc.CrearBorrador(GetSesion(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(registro.ABorradorResponse(b))
}

// Borrador godoc
// @Summary      Consultar un borrador
// @Tags         registro
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.BorradorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/registro/borradores/{id} [get]
func (h *RegistroHandler) Borrador(c *fiber.Ctx) error {
	b, err := h.uc.Borrador(GetSesion(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(registro.ABorradorResponse(b))
}

// ValidarCliente godoc
// @Summary      Resolver el cliente por documento
// @Tags         registro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.ValidarClienteRequest  true  "Documento del cliente"
// @Success      200   {object}  entity.Usuario
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/registro/borradores/{id}/validar-cliente [post]
func (h *RegistroHandler) ValidarCliente(c *fiber.Ctx) error {
	var in dto.ValidarClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cliente, err := h.uc.ValidarCliente(c.Context(), GetSesion(c), c.Params("id"), in.Documento)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(cliente)
}

// RegistrarCliente godoc
// @Summary      Alta inline de un cliente nuevo
// @Tags         registro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.RegistroClienteRequest  true  "Datos del cliente"
// @Success      201   {object}  entity.Usuario
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/registro/borradores/{id}/registrar-cliente [post]
func (h *RegistroHandler) RegistrarCliente(c *fiber.Ctx) error {
	var in dto.RegistroClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cliente, err := h.uc.RegistrarCliente(c.Context(), GetSesion(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cliente)
}

// ActualizarCampos godoc
// @Summary      Guardar los campos de captura del borrador
// @Tags         registro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.CamposMuestra  true  "Campos de la muestra"
// @Success      200   {object}  dto.BorradorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/registro/borradores/{id}/campos [put]
func (h *RegistroHandler) ActualizarCampos(c *fiber.Ctx) error {
	var in dto.CamposMuestra
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.ActualizarCampos(GetSesion(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(registro.ABorradorResponse(b))
}

// FirmarAdministrador godoc
// @Summary      Capturar la firma del administrador
// @Tags         registro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.FirmaRequest  true  "Firma PNG en data URI base64"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/registro/borradores/{id}/firma-administrador [post]
func (h *RegistroHandler) FirmarAdministrador(c *fiber.Ctx) error {
	var in dto.FirmaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.FirmarAdministrador(GetSesion(c), c.Params("id"), in.Firma); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Message: "firma del administrador registrada"})
}

// FirmarCliente godoc
// @Summary      Capturar la firma del cliente
// @Tags         registro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del borrador"
// @Param        body  body  dto.FirmaRequest  true  "Firma PNG en data URI base64"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/registro/borradores/{id}/firma-cliente [post]
func (h *RegistroHandler) FirmarCliente(c *fiber.Ctx) error {
	var in dto.FirmaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.FirmarCliente(GetSesion(c), c.Params("id"), in.Firma); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Message: "firma del cliente registrada"})
}

// Enviar godoc
// @Summary      Enviar la muestra al servicio de muestras
// @Tags         registro
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      201  {object}  entity.Muestra
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/registro/borradores/{id}/enviar [post]
func (h *RegistroHandler) Enviar(c *fiber.Ctx) error {
	m, err := h.uc.Enviar(c.Context(), GetSesion(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}
