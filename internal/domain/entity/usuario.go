package entity

// Rol rol de un usuario dentro del sistema.
type Rol string

// Roles válidos.
const (
	RolCliente       Rol = "cliente"
	RolLaboratorista Rol = "laboratorista"
	RolAdministrador Rol = "administrador"
	RolSuperAdmin    Rol = "super_admin"
)

// EsValido indica si el rol pertenece al conjunto enumerado.
func (r Rol) EsValido() bool {
	switch r {
	case RolCliente, RolLaboratorista, RolAdministrador, RolSuperAdmin:
		return true
	}
	return false
}

// Usuario cuenta en el directorio de usuarios. Para el flujo de registro de
// muestras interesa como clave de búsqueda (documento) y como gate de rol.
type Usuario struct {
	ID          string `json:"_id,omitempty"`
	Documento   string `json:"documento"`
	Nombre      string `json:"nombre,omitempty"`
	RazonSocial string `json:"razonSocial,omitempty"`
	Telefono    string `json:"telefono,omitempty"`
	Email       string `json:"email,omitempty"`
	Direccion   string `json:"direccion,omitempty"`
	Rol         Rol    `json:"rol,omitempty"`
	Activo      bool   `json:"activo,omitempty"`
}
