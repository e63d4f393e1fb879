// Package session modela la sesión del actor como un valor explícito que se
// resuelve una sola vez por petición (a partir del bearer token) y se inyecta
// en cada workflow, en lugar de consultas ambientales al almacenamiento local.
package session

import (
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/pkg/jwt"
)

// Sesion identidad del actor y token con el que se reenvían las llamadas a los
// servicios remotos.
type Sesion struct {
	UserID    string
	Documento string
	Nombre    string
	Email     string
	Rol       entity.Rol
	Token     string
}

// Capacidades conjunto de capacidades resuelto una vez por entrada al workflow.
// Evita re-derivar comparaciones de strings de rol en cada punto de decisión.
type Capacidades struct {
	RegistrarMuestras   bool
	IngresarResultados  bool
	VerificarResultados bool
	AdministrarUsuarios bool
	VerResultados       bool
}

// Desde construye la sesión a partir de los claims ya validados del token.
func Desde(data *jwt.SessionData, token string) Sesion {
	return Sesion{
		UserID:    data.UserID,
		Documento: data.Documento,
		Nombre:    data.Nombre,
		Email:     data.Email,
		Rol:       entity.Rol(data.Rol),
		Token:     token,
	}
}

// Capacidades resuelve el conjunto de capacidades del rol de la sesión.
func (s Sesion) Capacidades() Capacidades {
	switch s.Rol {
	case entity.RolAdministrador:
		return Capacidades{
			RegistrarMuestras:   true,
			VerificarResultados: true,
			AdministrarUsuarios: true,
			VerResultados:       true,
		}
	case entity.RolSuperAdmin:
		return Capacidades{
			RegistrarMuestras:   true,
			VerificarResultados: true,
			AdministrarUsuarios: true,
			VerResultados:       true,
		}
	case entity.RolLaboratorista:
		return Capacidades{
			IngresarResultados: true,
			VerResultados:      true,
		}
	default:
		return Capacidades{}
	}
}
