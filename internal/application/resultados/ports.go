package resultados

import (
	"context"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// MuestraReader lectura de muestras para el gate de estado.
type MuestraReader interface {
	ObtenerMuestra(ctx context.Context, token, id string) (*entity.Muestra, error)
}

// ResultadoService contrato contra el servicio de resultados. ObtenerResultado
// devuelve domain.ErrNotFound cuando la muestra aún no tiene resultados (modo
// creación). El servicio remoto es la única autoridad sobre historialCambios.
type ResultadoService interface {
	ObtenerResultado(ctx context.Context, token, idMuestra string) (*entity.Resultado, error)
	ListarResultados(ctx context.Context, token string) ([]entity.Resultado, error)
	RegistrarResultado(ctx context.Context, token, idMuestra string, in dto.GuardarResultadoRequest) (*entity.Resultado, error)
	EditarResultado(ctx context.Context, token, idMuestra string, in dto.GuardarResultadoRequest) (*entity.Resultado, error)
	VerificarResultado(ctx context.Context, token, idMuestra, observaciones string) (*entity.Resultado, error)
}
