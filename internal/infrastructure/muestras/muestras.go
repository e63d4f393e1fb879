package muestras

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	appmuestras "github.com/aqualab/aqualab-api/internal/application/muestras"
	appregistro "github.com/aqualab/aqualab-api/internal/application/registro"
	appresultados "github.com/aqualab/aqualab-api/internal/application/resultados"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ appregistro.MuestraService  = (*Client)(nil)
	_ appresultados.MuestraReader = (*Client)(nil)
	_ appmuestras.MuestraBrowser  = (*Client)(nil)
)

// muestraData sobre interno de los endpoints de muestras.
type muestraData struct {
	Muestra  *entity.Muestra  `json:"muestra"`
	Muestras []entity.Muestra `json:"muestras"`
}

func decodificarMuestra(raw json.RawMessage) (*entity.Muestra, error) {
	var data muestraData
	if err := json.Unmarshal(raw, &data); err == nil && data.Muestra != nil {
		return data.Muestra, nil
	}
	var m entity.Muestra
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: deserializar muestra: %v", domain.ErrRemoto, err)
	}
	return &m, nil
}

// RegistrarMuestra crea la muestra (firmas incluidas) en el servicio remoto.
func (c *Client) RegistrarMuestra(ctx context.Context, token string, m *entity.Muestra) (*entity.Muestra, error) {
	raw, err := c.do(ctx, http.MethodPost, "/muestras", token, m)
	if err != nil {
		return nil, err
	}
	return decodificarMuestra(raw)
}

// ObtenerMuestra trae una muestra por id.
func (c *Client) ObtenerMuestra(ctx context.Context, token, id string) (*entity.Muestra, error) {
	raw, err := c.do(ctx, http.MethodGet, "/muestras/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}
	return decodificarMuestra(raw)
}

// ActualizarMuestra modifica una muestra existente.
func (c *Client) ActualizarMuestra(ctx context.Context, token string, m *entity.Muestra) (*entity.Muestra, error) {
	raw, err := c.do(ctx, http.MethodPut, "/muestras/"+url.PathEscape(m.ID), token, m)
	if err != nil {
		return nil, err
	}
	return decodificarMuestra(raw)
}

func decodificarMuestras(raw json.RawMessage) ([]entity.Muestra, error) {
	var data muestraData
	if err := json.Unmarshal(raw, &data); err == nil && data.Muestras != nil {
		return data.Muestras, nil
	}
	var lista []entity.Muestra
	if err := json.Unmarshal(raw, &lista); err != nil {
		return nil, fmt.Errorf("%w: deserializar muestras: %v", domain.ErrRemoto, err)
	}
	return lista, nil
}

// ListarMuestras trae la colección completa.
func (c *Client) ListarMuestras(ctx context.Context, token string) ([]entity.Muestra, error) {
	raw, err := c.do(ctx, http.MethodGet, "/muestras", token, nil)
	if err != nil {
		return nil, err
	}
	return decodificarMuestras(raw)
}

// ListarMuestrasPorTipo filtra por tipo de muestra (Agua, Suelo).
func (c *Client) ListarMuestrasPorTipo(ctx context.Context, token, tipo string) ([]entity.Muestra, error) {
	raw, err := c.do(ctx, http.MethodGet, "/muestras/tipo/"+url.PathEscape(tipo), token, nil)
	if err != nil {
		return nil, err
	}
	return decodificarMuestras(raw)
}

// ListarMuestrasPorEstado filtra por estado del ciclo de vida.
func (c *Client) ListarMuestrasPorEstado(ctx context.Context, token string, estado entity.EstadoMuestra) ([]entity.Muestra, error) {
	raw, err := c.do(ctx, http.MethodGet, "/muestras/estado/"+url.PathEscape(string(estado)), token, nil)
	if err != nil {
		return nil, err
	}
	return decodificarMuestras(raw)
}

// TiposAgua catálogo de tipos de agua que mantiene el servicio de muestras.
func (c *Client) TiposAgua(ctx context.Context, token string) ([]entity.TipoDeAgua, error) {
	raw, err := c.do(ctx, http.MethodGet, "/tipos-agua", token, nil)
	if err != nil {
		return nil, err
	}
	var lista []entity.TipoDeAgua
	if err := json.Unmarshal(raw, &lista); err != nil {
		return nil, fmt.Errorf("%w: deserializar tipos de agua: %v", domain.ErrRemoto, err)
	}
	return lista, nil
}

// CambiarEstado registra un cambio de estado explícito de una muestra.
func (c *Client) CambiarEstado(ctx context.Context, token string, cambio entity.CambioEstado) error {
	_, err := c.do(ctx, http.MethodPost, "/cambios-estado/cambiar-estado", token, cambio)
	return err
}

// HistorialCambios historial de cambios de estado de una muestra.
func (c *Client) HistorialCambios(ctx context.Context, token, idMuestra string) ([]entity.CambioEstado, error) {
	raw, err := c.do(ctx, http.MethodGet, "/cambios-estado/historial/"+url.PathEscape(idMuestra), token, nil)
	if err != nil {
		return nil, err
	}
	var lista []entity.CambioEstado
	if err := json.Unmarshal(raw, &lista); err != nil {
		return nil, fmt.Errorf("%w: deserializar historial: %v", domain.ErrRemoto, err)
	}
	return lista, nil
}
