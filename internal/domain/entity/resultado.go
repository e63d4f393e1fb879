package entity

import (
	"sort"
	"time"
)

// Medicion valor y unidad de un parámetro de análisis. El valor viaja como
// string numérico (el servicio remoto lo devuelve así).
type Medicion struct {
	Valor  string `json:"valor"`
	Unidad string `json:"unidad"`
}

// CambioParametro valor anterior y nuevo de un parámetro dentro de una edición.
type CambioParametro struct {
	ValorAnterior string `json:"valorAnterior"`
	ValorNuevo    string `json:"valorNuevo"`
	Unidad        string `json:"unidad"`
}

// CambioResultado una entrada del historial de cambios de un resultado.
// El servicio de resultados es la única autoridad que construye estas entradas.
type CambioResultado struct {
	Fecha             time.Time                  `json:"fecha"`
	Nombre            string                     `json:"nombre"`
	CambiosRealizados map[string]CambioParametro `json:"cambiosRealizados"`
}

// Resultado conjunto de mediciones asociado 1:1 a una muestra.
type Resultado struct {
	IDMuestra                 string              `json:"idMuestra"`
	Parametros                map[string]Medicion `json:"parametros"`
	Observaciones             string              `json:"observaciones,omitempty"`
	Verificado                bool                `json:"verificado"`
	ObservacionesVerificacion string              `json:"observacionesVerificacion,omitempty"`
	NombreLaboratorista       string              `json:"nombreLaboratorista,omitempty"`
	CedulaLaboratorista       string              `json:"cedulaLaboratorista,omitempty"`
	HistorialCambios          []CambioResultado   `json:"historialCambios,omitempty"`
}

// TieneValores indica si al menos un parámetro trae valor no vacío.
func (r *Resultado) TieneValores() bool {
	for _, m := range r.Parametros {
		if m.Valor != "" {
			return true
		}
	}
	return false
}

// OrdenarHistorial ordena el historial de cambios del más reciente al más antiguo.
func (r *Resultado) OrdenarHistorial() {
	sort.SliceStable(r.HistorialCambios, func(i, j int) bool {
		return r.HistorialCambios[i].Fecha.After(r.HistorialCambios[j].Fecha)
	})
}
