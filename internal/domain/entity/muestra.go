package entity

import "time"

// EstadoMuestra estado del ciclo de vida de una muestra. Los valores son los
// strings de wire que maneja el servicio de muestras.
type EstadoMuestra string

// Estados válidos de una muestra.
const (
	EstadoRecibida   EstadoMuestra = "Recibida"
	EstadoEnAnalisis EstadoMuestra = "En análisis"
	EstadoPendiente  EstadoMuestra = "Pendiente de resultados"
	EstadoFinalizada EstadoMuestra = "Finalizada"
	EstadoRechazada  EstadoMuestra = "Rechazada"
)

// Tipos de muestra.
const (
	TipoMuestraAgua  = "Agua"
	TipoMuestraSuelo = "Suelo"
)

// Tipos de muestreo válidos. "Otro" requiere descripción libre.
const (
	MuestreoSimple    = "Simple"
	MuestreoCompuesto = "Compuesto"
	MuestreoOtro      = "Otro"
)

// Tipos de preservación válidos.
var TiposPreservacion = []string{"Refrigeración", "Congelación", "Temperatura Ambiente"}

// Tipos de agua válidos. "otra" requiere tipo personalizado y descripción.
const TipoAguaOtra = "otra"

var TiposAgua = []string{"potable", "natural", "residual", TipoAguaOtra}

// TipoDeAgua clasificación del agua para muestras de tipo Agua.
type TipoDeAgua struct {
	Tipo              string `json:"tipo"`
	TipoPersonalizado string `json:"tipoPersonalizado,omitempty"`
	Descripcion       string `json:"descripcion,omitempty"`
}

// Firma payload de una firma digital: data URI PNG en base64.
type Firma struct {
	Firma string `json:"firma"`
}

// Firmas par de firmas requeridas antes de registrar una muestra.
type Firmas struct {
	FirmaAdministrador Firma `json:"firmaAdministrador"`
	FirmaCliente       Firma `json:"firmaCliente"`
}

// Completas indica si ambas firmas están presentes.
func (f Firmas) Completas() bool {
	return f.FirmaAdministrador.Firma != "" && f.FirmaCliente.Firma != ""
}

// CambioEstado un registro del historial de cambios de estado de una muestra.
type CambioEstado struct {
	IDMuestra           string        `json:"id_muestra"`
	Estado              EstadoMuestra `json:"estado"`
	CedulaLaboratorista string        `json:"cedulaLaboratorista"`
	NombreLaboratorista string        `json:"nombreLaboratorista"`
	Observaciones       string        `json:"observaciones,omitempty"`
	FechaCambio         time.Time     `json:"fechaCambio,omitempty"`
}

// Muestra un espécimen físico (agua o suelo) ingresado para análisis.
//
// Invariantes: una muestra de Agua lleva TipoDeAgua no vacío; una de Suelo no
// lleva TipoDeAgua. AnalisisSeleccionados no vacío antes del registro. Ambas
// firmas presentes antes de salir del borrador.
type Muestra struct {
	ID                     string         `json:"id_muestra,omitempty"`
	Documento              string         `json:"documento"`
	TipoMuestra            string         `json:"tipoMuestra"`
	TipoMuestreo           string         `json:"tipoMuestreo"`
	TipoMuestreoOtro       string         `json:"tipoMuestreoOtro,omitempty"`
	FechaHora              string         `json:"fechaHora"`
	LugarMuestreo          string         `json:"lugarMuestreo"`
	PlanMuestreo           string         `json:"planMuestreo,omitempty"`
	CondicionesAmbientales string         `json:"condicionesAmbientales,omitempty"`
	PreservacionMuestra    string         `json:"preservacionMuestra,omitempty"`
	IdentificacionMuestra  string         `json:"identificacionMuestra,omitempty"`
	AnalisisSeleccionados  []string       `json:"analisisSeleccionados"`
	TipoDeAgua             *TipoDeAgua    `json:"tipoDeAgua,omitempty"`
	Estado                 EstadoMuestra  `json:"estado,omitempty"`
	Firmas                 Firmas         `json:"firmas"`
	NombreLaboratorista    string         `json:"nombreLaboratorista,omitempty"`
	Historial              []CambioEstado `json:"historial,omitempty"`
}
