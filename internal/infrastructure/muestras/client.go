// Package muestras adaptador HTTP contra el servicio remoto de muestras y
// resultados (prefijos /muestras, /ingreso-resultados, /cambios-estado y
// /tipos-agua del mismo backend).
package muestras

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aqualab/aqualab-api/internal/domain"
)

// Client cliente JSON del servicio de muestras. Las respuestas vienen en un
// sobre {success, message, data}. Sin reintentos automáticos.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL sin slash final, ej.
// "https://daniel-back-dom.onrender.com/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// sobre envoltura estándar de las respuestas del servicio.
type sobre struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do emite la petición y devuelve el campo data del sobre.
// Mapeo de estados: 401/403 → ErrSesionExpirada, 404 → ErrNotFound, resto de
// no-2xx → ErrRemoto con el mensaje del servidor si lo hay. El límite de
// lectura admite los payloads de firmas (hasta 2 MB cada una).
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("muestras: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("muestras: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoto, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrRemoto, err)
	}

	var env sobre
	_ = json.Unmarshal(rawBody, &env) // el mensaje de error viaja en el sobre

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (HTTP %d)", domain.ErrSesionExpirada, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w", domain.ErrNotFound)
	case resp.StatusCode >= 400:
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrRemoto, env.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d del servicio de muestras", domain.ErrRemoto, resp.StatusCode)
	}

	if len(env.Data) > 0 {
		return env.Data, nil
	}
	// Algunos endpoints responden el objeto sin sobre.
	return rawBody, nil
}
