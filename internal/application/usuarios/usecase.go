package usuarios

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/session"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase administración de usuarios y sesión: login, listado, alta con rol,
// actualización y cambio/recuperación de contraseña. Es un proxy delgado sobre
// el directorio remoto con los gates de rol de esta API.
//
// Regla canónica de contraseñas: mínimo 8 caracteres en todos los formularios.
type UseCase struct {
	directorio UsuarioDirectory
	jwtCfg     JWTConfig
}

// NewUseCase construye el caso de uso de usuarios.
func NewUseCase(directorio UsuarioDirectory, jwtCfg JWTConfig) *UseCase {
	return &UseCase{directorio: directorio, jwtCfg: jwtCfg}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinContrasena longitud mínima de contraseña.
const MinContrasena = 8

// Login delega la verificación de credenciales al directorio de usuarios y
// emite el token de sesión de esta API con el rol del usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrValidacion)
	}
	u, err := uc.directorio.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.SessionData{
		UserID:    u.ID,
		Documento: u.Documento,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       string(u.Rol),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Usuario: *u}, nil
}

// Listar usuarios del directorio. Requiere capacidad de administración.
func (uc *UseCase) Listar(ctx context.Context, ses session.Sesion) ([]entity.Usuario, error) {
	if !ses.Capacidades().AdministrarUsuarios {
		return nil, fmt.Errorf("%w: se requieren permisos de administrador", domain.ErrPermisoDenegado)
	}
	return uc.directorio.Listar(ctx, ses.Token)
}

// Registrar da de alta un usuario con rol. Requiere capacidad de administración;
// asignar super_admin solo lo puede hacer un super_admin.
func (uc *UseCase) Registrar(ctx context.Context, ses session.Sesion, in dto.RegistroUsuarioRequest) (*entity.Usuario, error) {
	if !ses.Capacidades().AdministrarUsuarios {
		return nil, fmt.Errorf("%w: se requieren permisos de administrador", domain.ErrPermisoDenegado)
	}
	if in.Nombre == "" || in.Documento == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: nombre, documento, email y password son requeridos", domain.ErrValidacion)
	}
	if !emailRe.MatchString(in.Email) {
		return nil, fmt.Errorf("%w: el formato del correo electrónico no es válido", domain.ErrValidacion)
	}
	if len(in.Password) < MinContrasena {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrValidacion, MinContrasena)
	}
	if !in.Rol.EsValido() {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrValidacion, in.Rol)
	}
	if in.Rol == entity.RolSuperAdmin && ses.Rol != entity.RolSuperAdmin {
		return nil, fmt.Errorf("%w: solo un super admin puede asignar el rol super_admin", domain.ErrPermisoDenegado)
	}
	return uc.directorio.RegistrarUsuario(ctx, ses.Token, in)
}

// Actualizar modifica campos editables de un usuario.
func (uc *UseCase) Actualizar(ctx context.Context, ses session.Sesion, id string, in dto.ActualizarUsuarioRequest) (*entity.Usuario, error) {
	if !ses.Capacidades().AdministrarUsuarios {
		return nil, fmt.Errorf("%w: se requieren permisos de administrador", domain.ErrPermisoDenegado)
	}
	if in.Email != "" && !emailRe.MatchString(in.Email) {
		return nil, fmt.Errorf("%w: el formato del correo electrónico no es válido", domain.ErrValidacion)
	}
	return uc.directorio.ActualizarUsuario(ctx, ses.Token, id, in)
}

// CambiarContrasena cambia la contraseña del usuario autenticado.
func (uc *UseCase) CambiarContrasena(ctx context.Context, ses session.Sesion, in dto.CambiarContrasenaRequest) error {
	if in.ContrasenaActual == "" || in.ContrasenaNueva == "" {
		return fmt.Errorf("%w: contraseña actual y nueva son requeridas", domain.ErrValidacion)
	}
	if len(in.ContrasenaNueva) < MinContrasena {
		return fmt.Errorf("%w: la contraseña nueva debe tener al menos %d caracteres", domain.ErrValidacion, MinContrasena)
	}
	return uc.directorio.CambiarContrasena(ctx, ses.Token, in)
}

// RecuperarContrasena dispara la recuperación por email (no autenticado).
func (uc *UseCase) RecuperarContrasena(ctx context.Context, email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: el formato del correo electrónico no es válido", domain.ErrValidacion)
	}
	return uc.directorio.RecuperarContrasena(ctx, email)
}
