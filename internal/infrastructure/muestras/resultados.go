package muestras

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	appresultados "github.com/aqualab/aqualab-api/internal/application/resultados"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

var _ appresultados.ResultadoService = (*Client)(nil)

const prefijoResultados = "/ingreso-resultados"

// En el wire los parámetros van como campos de primer nivel del resultado
// ("pH": {"valor": ..., "unidad": ...}) junto a los campos de metadatos. Estos
// son los metadatos reconocidos; todo lo demás que decodifique como medición
// se trata como parámetro.
var camposMetaResultado = map[string]bool{
	"_id": true, "__v": true, "idMuestra": true, "observaciones": true,
	"verificado": true, "observacionesVerificacion": true,
	"nombreLaboratorista": true, "cedulaLaboratorista": true,
	"historialCambios": true, "createdAt": true, "updatedAt": true,
}

// medicionWire admite valor numérico o string en el JSON remoto.
type medicionWire struct {
	Valor  json.RawMessage `json:"valor"`
	Unidad string          `json:"unidad"`
}

func (w medicionWire) aMedicion() (entity.Medicion, bool) {
	if len(w.Valor) == 0 {
		return entity.Medicion{}, false
	}
	var s string
	if err := json.Unmarshal(w.Valor, &s); err == nil {
		return entity.Medicion{Valor: s, Unidad: strings.TrimSpace(w.Unidad)}, true
	}
	var n json.Number
	if err := json.Unmarshal(w.Valor, &n); err == nil {
		return entity.Medicion{Valor: n.String(), Unidad: strings.TrimSpace(w.Unidad)}, true
	}
	return entity.Medicion{}, false
}

// resultadoMeta campos de metadatos del resultado remoto.
type resultadoMeta struct {
	IDMuestra                 string                   `json:"idMuestra"`
	Observaciones             string                   `json:"observaciones"`
	Verificado                bool                     `json:"verificado"`
	ObservacionesVerificacion string                   `json:"observacionesVerificacion"`
	NombreLaboratorista       string                   `json:"nombreLaboratorista"`
	CedulaLaboratorista       string                   `json:"cedulaLaboratorista"`
	HistorialCambios          []entity.CambioResultado `json:"historialCambios"`
}

// decodificarResultado arma la entidad: metadatos + mapa de parámetros a
// partir de los campos restantes.
func decodificarResultado(raw json.RawMessage) (*entity.Resultado, error) {
	// Algunos endpoints anidan el resultado bajo data.resultado.
	var anidado struct {
		Resultado json.RawMessage `json:"resultado"`
	}
	if err := json.Unmarshal(raw, &anidado); err == nil && len(anidado.Resultado) > 0 {
		raw = anidado.Resultado
	}

	var meta resultadoMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("%w: deserializar resultado: %v", domain.ErrRemoto, err)
	}
	var campos map[string]json.RawMessage
	if err := json.Unmarshal(raw, &campos); err != nil {
		return nil, fmt.Errorf("%w: deserializar resultado: %v", domain.ErrRemoto, err)
	}

	r := &entity.Resultado{
		IDMuestra:                 meta.IDMuestra,
		Parametros:                make(map[string]entity.Medicion),
		Observaciones:             meta.Observaciones,
		Verificado:                meta.Verificado,
		ObservacionesVerificacion: meta.ObservacionesVerificacion,
		NombreLaboratorista:       meta.NombreLaboratorista,
		CedulaLaboratorista:       meta.CedulaLaboratorista,
		HistorialCambios:          meta.HistorialCambios,
	}
	for nombre, v := range campos {
		if camposMetaResultado[nombre] {
			continue
		}
		var w medicionWire
		if err := json.Unmarshal(v, &w); err != nil {
			continue
		}
		if m, ok := w.aMedicion(); ok {
			r.Parametros[nombre] = m
		}
	}
	return r, nil
}

// guardarWire aplana parámetros + observaciones al formato del servicio.
func guardarWire(in dto.GuardarResultadoRequest) map[string]interface{} {
	body := make(map[string]interface{}, len(in.Parametros)+1)
	for nombre, m := range in.Parametros {
		if strings.TrimSpace(m.Valor) == "" {
			continue
		}
		body[nombre] = entity.Medicion{Valor: m.Valor, Unidad: m.Unidad}
	}
	body["observaciones"] = in.Observaciones
	return body
}

// ObtenerResultado trae el resultado de una muestra; domain.ErrNotFound cuando
// aún no hay resultados registrados.
func (c *Client) ObtenerResultado(ctx context.Context, token, idMuestra string) (*entity.Resultado, error) {
	raw, err := c.do(ctx, http.MethodGet, prefijoResultados+"/muestra/"+url.PathEscape(idMuestra), token, nil)
	if err != nil {
		return nil, err
	}
	r, err := decodificarResultado(raw)
	if err != nil {
		return nil, err
	}
	if r.IDMuestra == "" {
		r.IDMuestra = idMuestra
	}
	return r, nil
}

// ListarResultados trae la colección completa de resultados.
func (c *Client) ListarResultados(ctx context.Context, token string) ([]entity.Resultado, error) {
	raw, err := c.do(ctx, http.MethodGet, prefijoResultados+"/resultados", token, nil)
	if err != nil {
		return nil, err
	}
	var crudos []json.RawMessage
	if err := json.Unmarshal(raw, &crudos); err != nil {
		// Variante con sobre data.resultados.
		var data struct {
			Resultados []json.RawMessage `json:"resultados"`
		}
		if err2 := json.Unmarshal(raw, &data); err2 != nil {
			return nil, fmt.Errorf("%w: deserializar resultados: %v", domain.ErrRemoto, err)
		}
		crudos = data.Resultados
	}
	lista := make([]entity.Resultado, 0, len(crudos))
	for _, crudo := range crudos {
		r, err := decodificarResultado(crudo)
		if err != nil {
			return nil, err
		}
		lista = append(lista, *r)
	}
	return lista, nil
}

// RegistrarResultado crea el resultado de una muestra (rol laboratorista).
func (c *Client) RegistrarResultado(ctx context.Context, token, idMuestra string, in dto.GuardarResultadoRequest) (*entity.Resultado, error) {
	raw, err := c.do(ctx, http.MethodPost, prefijoResultados+"/registrar/"+url.PathEscape(idMuestra), token, guardarWire(in))
	if err != nil {
		return nil, err
	}
	return decodificarResultado(raw)
}

// EditarResultado actualiza el resultado; el servicio remoto anexa la entrada
// correspondiente al historial de cambios.
func (c *Client) EditarResultado(ctx context.Context, token, idMuestra string, in dto.GuardarResultadoRequest) (*entity.Resultado, error) {
	raw, err := c.do(ctx, http.MethodPut, prefijoResultados+"/editar/"+url.PathEscape(idMuestra), token, guardarWire(in))
	if err != nil {
		return nil, err
	}
	return decodificarResultado(raw)
}

// VerificarResultado marca el resultado como verificado (rol administrador).
// La regla "verificador distinto del laboratorista que registró" la valida el
// servicio; su mensaje de rechazo se propaga en ErrRemoto.
func (c *Client) VerificarResultado(ctx context.Context, token, idMuestra, observaciones string) (*entity.Resultado, error) {
	body := dto.VerificarRequest{Observaciones: observaciones}
	raw, err := c.do(ctx, http.MethodPost, prefijoResultados+"/verificar/"+url.PathEscape(idMuestra), token, body)
	if err != nil {
		return nil, err
	}
	r, err := decodificarResultado(raw)
	if err != nil {
		return nil, err
	}
	// Respuesta mínima de algunos backends: garantizar el flag localmente.
	r.Verificado = true
	if r.IDMuestra == "" {
		r.IDMuestra = idMuestra
	}
	return r, nil
}
