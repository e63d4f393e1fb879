package muestras

import (
	"context"

	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// MuestraBrowser puerto de consulta y cambio de estado contra el servicio de
// muestras.
type MuestraBrowser interface {
	ObtenerMuestra(ctx context.Context, token, id string) (*entity.Muestra, error)
	ListarMuestras(ctx context.Context, token string) ([]entity.Muestra, error)
	ListarMuestrasPorTipo(ctx context.Context, token, tipo string) ([]entity.Muestra, error)
	ListarMuestrasPorEstado(ctx context.Context, token string, estado entity.EstadoMuestra) ([]entity.Muestra, error)
	TiposAgua(ctx context.Context, token string) ([]entity.TipoDeAgua, error)
	CambiarEstado(ctx context.Context, token string, cambio entity.CambioEstado) error
	HistorialCambios(ctx context.Context, token, idMuestra string) ([]entity.CambioEstado, error)
}
