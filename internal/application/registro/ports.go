package registro

import (
	"context"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// ClienteDirectory contrato contra el directorio de usuarios para el paso de
// resolución de cliente. El token es el de la sesión actuante.
type ClienteDirectory interface {
	BuscarPorDocumento(ctx context.Context, token, documento string) (*entity.Usuario, error)
	RegistrarCliente(ctx context.Context, token string, in dto.RegistroClienteRequest) (*entity.Usuario, error)
}

// MuestraService contrato contra el servicio de muestras para el envío final.
type MuestraService interface {
	RegistrarMuestra(ctx context.Context, token string, m *entity.Muestra) (*entity.Muestra, error)
}
