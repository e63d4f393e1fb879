package usuarios

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/session"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	pkgjwt "github.com/aqualab/aqualab-api/pkg/jwt"
)

type directorioFake struct {
	usuario  *entity.Usuario
	errLogin error

	logins    int
	registros int
	cambios   int
}

func (f *directorioFake) Login(_ context.Context, _ dto.LoginRequest) (*entity.Usuario, error) {
	f.logins++
	if f.errLogin != nil {
		return nil, f.errLogin
	}
	return f.usuario, nil
}

func (f *directorioFake) Listar(_ context.Context, _ string) ([]entity.Usuario, error) {
	return []entity.Usuario{*f.usuario}, nil
}

func (f *directorioFake) RegistrarUsuario(_ context.Context, _ string, in dto.RegistroUsuarioRequest) (*entity.Usuario, error) {
	f.registros++
	return &entity.Usuario{Documento: in.Documento, Nombre: in.Nombre, Email: in.Email, Rol: in.Rol}, nil
}

func (f *directorioFake) ActualizarUsuario(_ context.Context, _ string, id string, _ dto.ActualizarUsuarioRequest) (*entity.Usuario, error) {
	u := *f.usuario
	u.ID = id
	return &u, nil
}

func (f *directorioFake) CambiarContrasena(_ context.Context, _ string, _ dto.CambiarContrasenaRequest) error {
	f.cambios++
	return nil
}

func (f *directorioFake) RecuperarContrasena(_ context.Context, _ string) error {
	return nil
}

const testSecret = "secret-de-pruebas"

func armar() (*UseCase, *directorioFake) {
	dir := &directorioFake{usuario: &entity.Usuario{
		ID: "u-1", Documento: "111", Nombre: "Admin", Email: "admin@lab.test", Rol: entity.RolAdministrador,
	}}
	uc := NewUseCase(dir, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "aqualab-test"})
	return uc, dir
}

func sesionAdmin() session.Sesion {
	return session.Sesion{UserID: "u-1", Rol: entity.RolAdministrador, Token: "tok"}
}

func TestLogin_EmiteTokenConElRolDelUsuario(t *testing.T) {
	uc, dir := armar()

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@lab.test", Password: "secreta-123"})
	require.NoError(t, err)
	assert.Equal(t, 1, dir.logins)
	assert.Equal(t, "Admin", out.Usuario.Nombre)

	// El token es de esta API y transporta el rol.
	data, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "administrador", data.Rol)
	assert.Equal(t, "111", data.Documento)
}

func TestLogin_CredencialesIncompletas(t *testing.T) {
	uc, dir := armar()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@lab.test"})
	assert.ErrorIs(t, err, domain.ErrValidacion)
	assert.Zero(t, dir.logins)
}

func TestLogin_CredencialesRechazadas(t *testing.T) {
	uc, dir := armar()
	dir.errLogin = fmt.Errorf("%w: credenciales inválidas", domain.ErrPermisoDenegado)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.test", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrPermisoDenegado)
}

func TestListar_RequiereAdministrador(t *testing.T) {
	uc, _ := armar()

	_, err := uc.Listar(context.Background(), session.Sesion{Rol: entity.RolLaboratorista})
	assert.ErrorIs(t, err, domain.ErrPermisoDenegado)

	lista, err := uc.Listar(context.Background(), sesionAdmin())
	require.NoError(t, err)
	assert.Len(t, lista, 1)
}

func TestRegistrar_Validaciones(t *testing.T) {
	uc, dir := armar()
	ctx := context.Background()

	valido := dto.RegistroUsuarioRequest{
		Nombre: "Laboratorista Nueva", Documento: "333", Email: "lab@lab.test",
		Password: "secreta-123", Rol: entity.RolLaboratorista,
	}

	_, err := uc.Registrar(ctx, session.Sesion{Rol: entity.RolLaboratorista}, valido)
	assert.ErrorIs(t, err, domain.ErrPermisoDenegado)

	corta := valido
	corta.Password = "corta"
	_, err = uc.Registrar(ctx, sesionAdmin(), corta)
	assert.ErrorIs(t, err, domain.ErrValidacion)

	malRol := valido
	malRol.Rol = "gerente"
	_, err = uc.Registrar(ctx, sesionAdmin(), malRol)
	assert.ErrorIs(t, err, domain.ErrValidacion)

	assert.Zero(t, dir.registros)

	u, err := uc.Registrar(ctx, sesionAdmin(), valido)
	require.NoError(t, err)
	assert.Equal(t, entity.RolLaboratorista, u.Rol)
	assert.Equal(t, 1, dir.registros)
}

// Solo un super admin puede asignar el rol super_admin.
func TestRegistrar_SuperAdminSoloPorSuperAdmin(t *testing.T) {
	uc, _ := armar()
	ctx := context.Background()
	in := dto.RegistroUsuarioRequest{
		Nombre: "Root", Documento: "000", Email: "root@lab.test",
		Password: "secreta-123", Rol: entity.RolSuperAdmin,
	}

	_, err := uc.Registrar(ctx, sesionAdmin(), in)
	assert.ErrorIs(t, err, domain.ErrPermisoDenegado)

	_, err = uc.Registrar(ctx, session.Sesion{Rol: entity.RolSuperAdmin}, in)
	assert.NoError(t, err)
}

func TestCambiarContrasena(t *testing.T) {
	uc, dir := armar()
	ctx := context.Background()
	ses := sesionAdmin()

	err := uc.CambiarContrasena(ctx, ses, dto.CambiarContrasenaRequest{ContrasenaActual: "vieja-1234"})
	assert.ErrorIs(t, err, domain.ErrValidacion)

	err = uc.CambiarContrasena(ctx, ses, dto.CambiarContrasenaRequest{
		ContrasenaActual: "vieja-1234", ContrasenaNueva: "corta",
	})
	assert.ErrorIs(t, err, domain.ErrValidacion)
	assert.Zero(t, dir.cambios)

	err = uc.CambiarContrasena(ctx, ses, dto.CambiarContrasenaRequest{
		ContrasenaActual: "vieja-1234", ContrasenaNueva: "nueva-secreta-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, dir.cambios)
}

func TestRecuperarContrasena_EmailInvalido(t *testing.T) {
	uc, _ := armar()

	err := uc.RecuperarContrasena(context.Background(), "no-es-email")
	assert.ErrorIs(t, err, domain.ErrValidacion)

	err = uc.RecuperarContrasena(context.Background(), "cuenta@lab.test")
	assert.NoError(t, err)
}
