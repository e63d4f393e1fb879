package dto

import "github.com/aqualab/aqualab-api/internal/domain/entity"

// LoginRequest credenciales contra el directorio de usuarios.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sesión emitido por esta API más el usuario.
type LoginResponse struct {
	Token   string         `json:"token"`
	Usuario entity.Usuario `json:"usuario"`
}

// RegistroClienteRequest alta de un cliente desde el escape hatch del registro
// de muestras. Mínimo requerido: nombre, documento, email y password.
type RegistroClienteRequest struct {
	Nombre      string `json:"nombre"`
	Documento   string `json:"documento"`
	Telefono    string `json:"telefono,omitempty"`
	Direccion   string `json:"direccion,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	RazonSocial string `json:"razonSocial,omitempty"`
}

// RegistroUsuarioRequest alta de un usuario con rol desde administración.
type RegistroUsuarioRequest struct {
	Nombre    string     `json:"nombre"`
	Documento string     `json:"documento"`
	Telefono  string     `json:"telefono,omitempty"`
	Direccion string     `json:"direccion,omitempty"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Rol       entity.Rol `json:"rol"`
}

// ActualizarUsuarioRequest campos editables de un usuario.
type ActualizarUsuarioRequest struct {
	Nombre    string `json:"nombre,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Email     string `json:"email,omitempty"`
	Activo    *bool  `json:"activo,omitempty"`
}

// CambiarContrasenaRequest cambio de contraseña del usuario autenticado.
type CambiarContrasenaRequest struct {
	ContrasenaActual string `json:"contrasenaActual"`
	ContrasenaNueva  string `json:"contrasenaNueva"`
}

// RecuperarContrasenaRequest solicitud de recuperación por email.
type RecuperarContrasenaRequest struct {
	Email string `json:"email"`
}
