package usuarios

import (
	"context"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// UsuarioDirectory contrato contra el directorio remoto de usuarios.
type UsuarioDirectory interface {
	Login(ctx context.Context, in dto.LoginRequest) (*entity.Usuario, error)
	Listar(ctx context.Context, token string) ([]entity.Usuario, error)
	RegistrarUsuario(ctx context.Context, token string, in dto.RegistroUsuarioRequest) (*entity.Usuario, error)
	ActualizarUsuario(ctx context.Context, token, id string, in dto.ActualizarUsuarioRequest) (*entity.Usuario, error)
	CambiarContrasena(ctx context.Context, token string, in dto.CambiarContrasenaRequest) error
	RecuperarContrasena(ctx context.Context, email string) error
}
