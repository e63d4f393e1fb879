package dto

import "github.com/aqualab/aqualab-api/internal/domain/entity"

// CamposMuestra campos del paso de captura del registro de muestras.
// La fecha viaja con el formato del formulario (YYYY-MM-DDTHH:MM).
type CamposMuestra struct {
	TipoMuestra            string             `json:"tipoMuestra"`
	TipoMuestreo           string             `json:"tipoMuestreo"`
	TipoMuestreoOtro       string             `json:"tipoMuestreoOtro,omitempty"`
	FechaHora              string             `json:"fechaHora"`
	LugarMuestreo          string             `json:"lugarMuestreo"`
	PlanMuestreo           string             `json:"planMuestreo,omitempty"`
	CondicionesAmbientales string             `json:"condicionesAmbientales,omitempty"`
	PreservacionMuestra    string             `json:"preservacionMuestra,omitempty"`
	IdentificacionMuestra  string             `json:"identificacionMuestra,omitempty"`
	AnalisisSeleccionados  []string           `json:"analisisSeleccionados"`
	TipoDeAgua             *entity.TipoDeAgua `json:"tipoDeAgua,omitempty"`
}

// FirmaRequest payload de captura de una firma (data URI PNG base64).
type FirmaRequest struct {
	Firma string `json:"firma"`
}

// ValidarClienteRequest paso de resolución de cliente por documento.
type ValidarClienteRequest struct {
	Documento string `json:"documento"`
}

// BorradorResponse estado visible de un borrador de registro.
type BorradorResponse struct {
	ID                 string          `json:"id"`
	Campos             *CamposMuestra  `json:"campos,omitempty"`
	Cliente            *entity.Usuario `json:"cliente,omitempty"`
	FirmaAdministrador bool            `json:"firmaAdministrador"`
	FirmaCliente       bool            `json:"firmaCliente"`
	ListoParaEnviar    bool            `json:"listoParaEnviar"`
}
