package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/usuarios"
)

// UsuarioHandler maneja autenticación y administración de usuarios.
type UsuarioHandler struct {
	uc *usuarios.UseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usuarios.UseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *UsuarioHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// RecuperarContrasena godoc
// @Summary      Recuperar contraseña por email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecuperarContrasenaRequest  true  "Email de la cuenta"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/recuperar-contrasena [post]
func (h *UsuarioHandler) RecuperarContrasena(c *fiber.Ctx) error {
	var in dto.RecuperarContrasenaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RecuperarContrasena(c.Context(), in.Email); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Message: "si la cuenta existe, se envió un correo de recuperación"})
}

// Listar godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Usuario
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) Listar(c *fiber.Ctx) error {
	out, err := h.uc.Listar(c.Context(), GetSesion(c))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Registrar godoc
// @Summary      Registrar usuario con rol
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistroUsuarioRequest  true  "Datos del usuario"
// @Success      201   {object}  entity.Usuario
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistroUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Registrar(c.Context(), GetSesion(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.ActualizarUsuarioRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Usuario
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UsuarioHandler) Actualizar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ActualizarUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Actualizar(c.Context(), GetSesion(c), id, in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CambiarContrasena godoc
// @Summary      Cambiar contraseña propia
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CambiarContrasenaRequest  true  "Contraseña actual y nueva"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/usuarios/cambiar-contrasena [put]
func (h *UsuarioHandler) CambiarContrasena(c *fiber.Ctx) error {
	var in dto.CambiarContrasenaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CambiarContrasena(c.Context(), GetSesion(c), in); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Message: "contraseña actualizada"})
}
