// Package muestras expone la consulta de muestras registradas, los catálogos
// del formulario y el cambio explícito de estado del ciclo de vida.
package muestras

import (
	"context"
	"fmt"
	"strings"

	"github.com/aqualab/aqualab-api/internal/application/session"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/catalogo"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
	"github.com/aqualab/aqualab-api/internal/domain/lifecycle"
)

// UseCase consultas sobre muestras registradas. Un cliente solo ve sus propias
// muestras; laboratorista y administrador ven todas.
type UseCase struct {
	muestras MuestraBrowser
}

// NewUseCase construye el caso de uso de consulta de muestras.
func NewUseCase(muestras MuestraBrowser) *UseCase {
	return &UseCase{muestras: muestras}
}

// esPersonal indica si la sesión pertenece al personal del laboratorio.
func esPersonal(ses session.Sesion) bool {
	switch ses.Rol {
	case entity.RolLaboratorista, entity.RolAdministrador, entity.RolSuperAdmin:
		return true
	}
	return false
}

// filtrarPropias recorta la lista a las muestras del documento de la sesión.
func filtrarPropias(lista []entity.Muestra, documento string) []entity.Muestra {
	propias := make([]entity.Muestra, 0, len(lista))
	for _, m := range lista {
		if m.Documento == documento {
			propias = append(propias, m)
		}
	}
	return propias
}

// Obtener trae una muestra por id. Un cliente solo puede consultar las suyas.
func (uc *UseCase) Obtener(ctx context.Context, ses session.Sesion, id string) (*entity.Muestra, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id de muestra requerido", domain.ErrValidacion)
	}
	m, err := uc.muestras.ObtenerMuestra(ctx, ses.Token, id)
	if err != nil {
		return nil, err
	}
	if !esPersonal(ses) && m.Documento != ses.Documento {
		return nil, fmt.Errorf("%w: la muestra pertenece a otro cliente", domain.ErrPermisoDenegado)
	}
	return m, nil
}

// Listar devuelve las muestras visibles para la sesión.
func (uc *UseCase) Listar(ctx context.Context, ses session.Sesion) ([]entity.Muestra, error) {
	lista, err := uc.muestras.ListarMuestras(ctx, ses.Token)
	if err != nil {
		return nil, err
	}
	if !esPersonal(ses) {
		lista = filtrarPropias(lista, ses.Documento)
	}
	return lista, nil
}

// ListarPorTipo filtra por tipo de muestra (Agua, Suelo).
func (uc *UseCase) ListarPorTipo(ctx context.Context, ses session.Sesion, tipo string) ([]entity.Muestra, error) {
	if tipo != entity.TipoMuestraAgua && tipo != entity.TipoMuestraSuelo {
		return nil, fmt.Errorf("%w: tipo de muestra desconocido %q", domain.ErrValidacion, tipo)
	}
	lista, err := uc.muestras.ListarMuestrasPorTipo(ctx, ses.Token, tipo)
	if err != nil {
		return nil, err
	}
	if !esPersonal(ses) {
		lista = filtrarPropias(lista, ses.Documento)
	}
	return lista, nil
}

// ListarPorEstado filtra por estado del ciclo de vida.
func (uc *UseCase) ListarPorEstado(ctx context.Context, ses session.Sesion, estado entity.EstadoMuestra) ([]entity.Muestra, error) {
	if !lifecycle.EsEstadoValido(estado) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrValidacion, estado)
	}
	lista, err := uc.muestras.ListarMuestrasPorEstado(ctx, ses.Token, estado)
	if err != nil {
		return nil, err
	}
	if !esPersonal(ses) {
		lista = filtrarPropias(lista, ses.Documento)
	}
	return lista, nil
}

// TiposAgua catálogo remoto de tipos de agua.
func (uc *UseCase) TiposAgua(ctx context.Context, ses session.Sesion) ([]entity.TipoDeAgua, error) {
	return uc.muestras.TiposAgua(ctx, ses.Token)
}

// CatalogoAnalisis catálogo local de análisis para un tipo de muestra.
func (uc *UseCase) CatalogoAnalisis(tipo string) ([]catalogo.Categoria, error) {
	cats := catalogo.AnalisisPara(tipo)
	if cats == nil {
		return nil, fmt.Errorf("%w: tipo de muestra desconocido %q", domain.ErrValidacion, tipo)
	}
	return cats, nil
}

// CambiarEstado dispara una transición explícita del ciclo de vida. La
// transición se valida contra la tabla antes de llamar al servicio; el actor
// queda registrado en el historial.
func (uc *UseCase) CambiarEstado(ctx context.Context, ses session.Sesion, id string, hacia entity.EstadoMuestra, observaciones string) (*entity.Muestra, error) {
	m, err := uc.muestras.ObtenerMuestra(ctx, ses.Token, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.PuedeTransicionar(m.Estado, hacia, ses.Rol); err != nil {
		return nil, err
	}
	cambio := entity.CambioEstado{
		IDMuestra:           id,
		Estado:              hacia,
		CedulaLaboratorista: ses.Documento,
		NombreLaboratorista: ses.Nombre,
		Observaciones:       observaciones,
	}
	if err := uc.muestras.CambiarEstado(ctx, ses.Token, cambio); err != nil {
		return nil, err
	}
	return uc.muestras.ObtenerMuestra(ctx, ses.Token, id)
}

// Historial historial de cambios de estado de una muestra.
func (uc *UseCase) Historial(ctx context.Context, ses session.Sesion, id string) ([]entity.CambioEstado, error) {
	if !esPersonal(ses) {
		m, err := uc.muestras.ObtenerMuestra(ctx, ses.Token, id)
		if err != nil {
			return nil, err
		}
		if m.Documento != ses.Documento {
			return nil, fmt.Errorf("%w: la muestra pertenece a otro cliente", domain.ErrPermisoDenegado)
		}
	}
	return uc.muestras.HistorialCambios(ctx, ses.Token, id)
}
