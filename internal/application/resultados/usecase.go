package resultados

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/application/session"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/internal/domain/lifecycle"
)

// UseCase flujo de ingreso, edición y verificación de resultados de análisis.
// Las precondiciones locales (valores presentes, estado de la muestra, rol) se
// validan antes de emitir cualquier llamada al servicio remoto.
type UseCase struct {
	muestras   MuestraReader
	resultados ResultadoService
}

// NewUseCase construye el caso de uso de resultados.
func NewUseCase(muestras MuestraReader, resultados ResultadoService) *UseCase {
	return &UseCase{muestras: muestras, resultados: resultados}
}

// Contexto muestra + resultado existente + modo resuelto para el formulario.
type Contexto struct {
	Muestra   *entity.Muestra
	Resultado *entity.Resultado
	Edicion   bool
}

// Rango admisible para pH.
var (
	phMin = decimal.Zero
	phMax = decimal.NewFromInt(14)
)

// CargarContexto trae la muestra (gate de estado) y el resultado existente si
// lo hay. Es una lectura pura: llamarla dos veces sin mutación intermedia
// devuelve la misma vista. Si la muestra no admite resultados, o el resultado
// ya está verificado (regla estricta: sin ediciones después de verificar),
// falla con ErrEstadoInvalido.
func (uc *UseCase) CargarContexto(ctx context.Context, ses session.Sesion, idMuestra string) (*Contexto, error) {
	m, err := uc.muestras.ObtenerMuestra(ctx, ses.Token, idMuestra)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.PuedeIngresarResultados(m.Estado); err != nil {
		return nil, err
	}

	r, err := uc.resultados.ObtenerResultado(ctx, ses.Token, idMuestra)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &Contexto{Muestra: m, Edicion: false}, nil
		}
		return nil, err
	}
	if r.Verificado {
		return nil, fmt.Errorf("%w: un resultado verificado no admite más ediciones", domain.ErrEstadoInvalido)
	}
	r.OrdenarHistorial()
	return &Contexto{Muestra: m, Resultado: r, Edicion: true}, nil
}

// Guardar registra (creación) o actualiza (edición) los resultados de una
// muestra. La rama creación vs edición se resuelve aquí según exista ya un
// resultado. El historial de cambios lo construye el servicio remoto; la
// respuesta canónica del servidor reemplaza el estado local.
func (uc *UseCase) Guardar(ctx context.Context, ses session.Sesion, idMuestra string, in dto.GuardarResultadoRequest) (*entity.Resultado, error) {
	if !ses.Capacidades().IngresarResultados {
		return nil, fmt.Errorf("%w: solo un laboratorista puede registrar o editar resultados",
			domain.ErrPermisoDenegado)
	}
	if err := validarParametros(in.Parametros); err != nil {
		return nil, err
	}

	contexto, err := uc.CargarContexto(ctx, ses, idMuestra)
	if err != nil {
		return nil, err
	}

	var r *entity.Resultado
	if contexto.Edicion {
		r, err = uc.resultados.EditarResultado(ctx, ses.Token, idMuestra, in)
	} else {
		r, err = uc.resultados.RegistrarResultado(ctx, ses.Token, idMuestra, in)
	}
	if err != nil {
		return nil, err
	}
	r.OrdenarHistorial()
	return r, nil
}

// validarParametros exige al menos un valor no vacío y que cada valor presente
// sea un decimal bien formado; pH además dentro de [0, 14]. Se valida antes de
// emitir cualquier petición.
func validarParametros(parametros map[string]entity.Medicion) error {
	alguno := false
	for nombre, m := range parametros {
		valor := strings.TrimSpace(m.Valor)
		if valor == "" {
			continue
		}
		alguno = true
		d, err := decimal.NewFromString(valor)
		if err != nil {
			return fmt.Errorf("%w: el valor de %s no es numérico (%q)", domain.ErrValidacion, nombre, m.Valor)
		}
		if nombre == "pH" && (d.LessThan(phMin) || d.GreaterThan(phMax)) {
			return fmt.Errorf("%w: el pH debe estar entre 0 y 14", domain.ErrValidacion)
		}
	}
	if !alguno {
		return fmt.Errorf("%w: debe ingresar al menos un resultado", domain.ErrValidacion)
	}
	return nil
}

// Verificar marca el resultado como verificado. Requiere rol administrador,
// observaciones no vacías y resultado sin verificar. La regla "el verificador
// no puede ser el mismo laboratorista que registró el resultado" la impone el
// servicio remoto y su mensaje se propaga tal cual. En éxito la colección de
// resultados se refresca desde la fuente de verdad.
func (uc *UseCase) Verificar(ctx context.Context, ses session.Sesion, idMuestra, observaciones string) (*dto.VerificacionResponse, error) {
	if !ses.Capacidades().VerificarResultados {
		return nil, fmt.Errorf("%w: solo el administrador puede verificar resultados", domain.ErrPermisoDenegado)
	}
	if strings.TrimSpace(observaciones) == "" {
		return nil, fmt.Errorf("%w: las observaciones de verificación son requeridas", domain.ErrValidacion)
	}

	actual, err := uc.resultados.ObtenerResultado(ctx, ses.Token, idMuestra)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.PuedeVerificar(actual, ses.Rol); err != nil {
		return nil, err
	}

	verificado, err := uc.resultados.VerificarResultado(ctx, ses.Token, idMuestra, observaciones)
	if err != nil {
		return nil, err
	}

	lista, err := uc.resultados.ListarResultados(ctx, ses.Token)
	if err != nil {
		// La verificación ya ocurrió; el refetch fallido no la deshace.
		return &dto.VerificacionResponse{Resultado: verificado}, nil
	}
	return &dto.VerificacionResponse{Resultado: verificado, Resultados: lista}, nil
}

// ListarResultados colección actual desde el servicio de resultados.
func (uc *UseCase) ListarResultados(ctx context.Context, ses session.Sesion) ([]entity.Resultado, error) {
	if !ses.Capacidades().VerResultados {
		return nil, fmt.Errorf("%w: rol sin acceso a la lista de resultados", domain.ErrPermisoDenegado)
	}
	return uc.resultados.ListarResultados(ctx, ses.Token)
}
