// Package lifecycle es la única autoridad sobre los estados de una muestra y
// las transiciones legales entre ellos: quién puede disparar cada transición y
// bajo qué precondición.
package lifecycle

import (
	"fmt"

	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// estadosValidos todos los estados reconocidos.
var estadosValidos = map[entity.EstadoMuestra]bool{
	entity.EstadoRecibida:   true,
	entity.EstadoEnAnalisis: true,
	entity.EstadoPendiente:  true,
	entity.EstadoFinalizada: true,
	entity.EstadoRechazada:  true,
}

// transicion una arista de la tabla de transiciones: desde → hacia, disparada
// por un rol. El estado vacío en Desde representa la creación de la muestra.
type transicion struct {
	Desde entity.EstadoMuestra
	Hacia entity.EstadoMuestra
	Rol   entity.Rol
}

// Tabla de transiciones. "Pendiente de resultados" la fija el servicio de
// muestras por su cuenta; el cliente solo la observa, por eso no aparece como
// destino disparable aquí. Rechazada es alcanzable desde cualquier estado no
// terminal por un administrador.
var transicionesValidas = []transicion{
	{Desde: "", Hacia: entity.EstadoRecibida, Rol: entity.RolAdministrador},
	{Desde: entity.EstadoRecibida, Hacia: entity.EstadoEnAnalisis, Rol: entity.RolLaboratorista},
	{Desde: entity.EstadoRecibida, Hacia: entity.EstadoFinalizada, Rol: entity.RolAdministrador},
	{Desde: entity.EstadoEnAnalisis, Hacia: entity.EstadoFinalizada, Rol: entity.RolAdministrador},
	{Desde: entity.EstadoRecibida, Hacia: entity.EstadoRechazada, Rol: entity.RolAdministrador},
	{Desde: entity.EstadoEnAnalisis, Hacia: entity.EstadoRechazada, Rol: entity.RolAdministrador},
	{Desde: entity.EstadoPendiente, Hacia: entity.EstadoRechazada, Rol: entity.RolAdministrador},
}

// EsEstadoValido indica si el estado pertenece al conjunto reconocido.
func EsEstadoValido(e entity.EstadoMuestra) bool {
	return estadosValidos[e]
}

// EsTerminal indica si el estado no admite más transiciones.
func EsTerminal(e entity.EstadoMuestra) bool {
	return e == entity.EstadoFinalizada || e == entity.EstadoRechazada
}

// PuedeTransicionar valida que la transición desde → hacia exista en la tabla
// y que el rol actor pueda dispararla. super_admin hereda lo del administrador.
func PuedeTransicionar(desde, hacia entity.EstadoMuestra, rol entity.Rol) error {
	if desde != "" && !EsEstadoValido(desde) {
		return fmt.Errorf("%w: estado de origen desconocido %q", domain.ErrEstadoInvalido, desde)
	}
	if !EsEstadoValido(hacia) {
		return fmt.Errorf("%w: estado de destino desconocido %q", domain.ErrEstadoInvalido, hacia)
	}
	if EsTerminal(desde) {
		return fmt.Errorf("%w: %q es un estado terminal", domain.ErrEstadoInvalido, desde)
	}
	efectivo := rol
	if efectivo == entity.RolSuperAdmin {
		efectivo = entity.RolAdministrador
	}
	for _, t := range transicionesValidas {
		if t.Desde == desde && t.Hacia == hacia {
			if t.Rol != efectivo {
				return fmt.Errorf("%w: el rol %q no puede pasar una muestra de %q a %q",
					domain.ErrPermisoDenegado, rol, desde, hacia)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: no existe transición de %q a %q", domain.ErrEstadoInvalido, desde, hacia)
}

// PuedeIngresarResultados valida que el estado de la muestra permita registrar
// o actualizar resultados: solo "Recibida" o "En análisis".
func PuedeIngresarResultados(e entity.EstadoMuestra) error {
	if e == entity.EstadoRecibida || e == entity.EstadoEnAnalisis {
		return nil
	}
	return fmt.Errorf(
		"%w: solo se pueden registrar o actualizar resultados de muestras en estado %q o %q (estado actual: %q)",
		domain.ErrEstadoInvalido, entity.EstadoRecibida, entity.EstadoEnAnalisis, e)
}

// PuedeVerificar valida que el resultado exista, no esté ya verificado y que el
// actor sea administrador. La regla "el verificador no puede ser el mismo
// laboratorista que registró el resultado" la impone el servicio de resultados;
// aquí no se revalida.
func PuedeVerificar(r *entity.Resultado, rol entity.Rol) error {
	if r == nil {
		return fmt.Errorf("%w: la muestra no tiene resultados registrados", domain.ErrNotFound)
	}
	if rol != entity.RolAdministrador && rol != entity.RolSuperAdmin {
		return fmt.Errorf("%w: solo el administrador puede verificar resultados", domain.ErrPermisoDenegado)
	}
	if r.Verificado {
		return fmt.Errorf("%w (muestra %s)", domain.ErrYaVerificado, r.IDMuestra)
	}
	return nil
}
