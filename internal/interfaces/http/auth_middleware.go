package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/session"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/pkg/jwt"
)

// LocalSesion key de la sesión en c.Locals.
const LocalSesion = "sesion"

// AuthMiddleware valida el Bearer Token JWT y deja la sesión resuelta en
// c.Locals. Los handlers y casos de uso trabajan con ese valor; ninguno vuelve
// a parsear el token.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		data, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSesion, session.Desde(data, tokenString))
		return c.Next()
	}
}

// GetSesion devuelve la sesión del contexto (después del middleware de auth).
func GetSesion(c *fiber.Ctx) session.Sesion {
	v := c.Locals(LocalSesion)
	if v == nil {
		return session.Sesion{}
	}
	s, _ := v.(session.Sesion)
	return s
}

// RequireRol corta la petición si el rol de la sesión no está en la lista.
// super_admin pasa donde pasa administrador.
func RequireRol(roles ...entity.Rol) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ses := GetSesion(c)
		if ses.Rol == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "sesión sin rol"})
		}
		for _, r := range roles {
			if ses.Rol == r {
				return c.Next()
			}
			if r == entity.RolAdministrador && ses.Rol == entity.RolSuperAdmin {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}
