package dto

import "github.com/aqualab/aqualab-api/internal/domain/entity"

// GuardarResultadoRequest parámetros y observaciones del formulario de resultados.
type GuardarResultadoRequest struct {
	Parametros    map[string]entity.Medicion `json:"parametros"`
	Observaciones string                     `json:"observaciones,omitempty"`
}

// VerificarRequest observaciones obligatorias de la verificación.
type VerificarRequest struct {
	Observaciones string `json:"observaciones"`
}

// ContextoResultadoResponse contexto cargado para el formulario: muestra,
// resultado existente (si lo hay) y el modo resuelto (edición vs creación).
type ContextoResultadoResponse struct {
	Muestra   *entity.Muestra   `json:"muestra"`
	Resultado *entity.Resultado `json:"resultado,omitempty"`
	Edicion   bool              `json:"edicion"`
}

// VerificacionResponse resultado verificado más la colección refrescada desde
// la fuente de verdad.
type VerificacionResponse struct {
	Resultado  *entity.Resultado  `json:"resultado"`
	Resultados []entity.Resultado `json:"resultados"`
}
