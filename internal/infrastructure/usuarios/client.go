// Package usuarios adaptador HTTP contra el servicio remoto de usuarios
// (directorio de clientes, credenciales y administración de cuentas).
package usuarios

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	appregistro "github.com/aqualab/aqualab-api/internal/application/registro"
	appusuarios "github.com/aqualab/aqualab-api/internal/application/usuarios"
	"github.com/aqualab/aqualab-api/internal/domain"
	"github.com/aqualab/aqualab-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ appregistro.ClienteDirectory = (*Client)(nil)
	_ appusuarios.UsuarioDirectory = (*Client)(nil)
)

// Client cliente JSON del servicio de usuarios. Sin reintentos: una petición
// resuelve o el workflow reporta su fallo.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL sin slash final, ej.
// "https://back-usuarios-f.onrender.com/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// mensajeError cuerpo de error que devuelve el servicio.
type mensajeError struct {
	Message string `json:"message"`
}

// doJSON emite una petición JSON autenticada y decodifica la respuesta en out.
// Mapeo de estados: 401/403 → ErrSesionExpirada, 404 → ErrNotFound, resto de
// no-2xx → ErrRemoto con el mensaje del servidor si lo hay.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("usuarios: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("usuarios: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoto, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrRemoto, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (HTTP %d)", domain.ErrSesionExpirada, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	case resp.StatusCode >= 400:
		var msg mensajeError
		if jsonErr := json.Unmarshal(rawBody, &msg); jsonErr == nil && msg.Message != "" {
			return fmt.Errorf("%w: %s", domain.ErrRemoto, msg.Message)
		}
		return fmt.Errorf("%w: HTTP %d del servicio de usuarios", domain.ErrRemoto, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(rawBody, out); err != nil {
			return fmt.Errorf("%w: deserializar respuesta: %v", domain.ErrRemoto, err)
		}
	}
	return nil
}

// BuscarPorDocumento resuelve un cliente por documento. Un registro sin
// documento se trata como no encontrado.
func (c *Client) BuscarPorDocumento(ctx context.Context, token, documento string) (*entity.Usuario, error) {
	var u entity.Usuario
	path := "/usuarios/buscar?documento=" + url.QueryEscape(documento)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &u); err != nil {
		return nil, err
	}
	if u.Documento == "" {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrNotFound)
	}
	return &u, nil
}

// registroClienteWire payload de alta de cliente; el tipo fijo "cliente" lo
// espera el servicio.
type registroClienteWire struct {
	dto.RegistroClienteRequest
	Tipo string `json:"tipo"`
}

// RegistrarCliente da de alta un cliente en el directorio.
func (c *Client) RegistrarCliente(ctx context.Context, token string, in dto.RegistroClienteRequest) (*entity.Usuario, error) {
	var u entity.Usuario
	body := registroClienteWire{RegistroClienteRequest: in, Tipo: string(entity.RolCliente)}
	if err := c.doJSON(ctx, http.MethodPost, "/usuarios/registro", token, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// loginResponseWire respuesta del login remoto.
type loginResponseWire struct {
	Usuario *entity.Usuario `json:"usuario"`
}

// Login verifica credenciales contra el directorio. Credenciales rechazadas se
// reportan como permiso denegado, no como sesión expirada.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*entity.Usuario, error) {
	var out loginResponseWire
	err := c.doJSON(ctx, http.MethodPost, "/usuarios/login", "", in, &out)
	if err != nil {
		if errors.Is(err, domain.ErrSesionExpirada) {
			return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrPermisoDenegado)
		}
		return nil, err
	}
	if out.Usuario == nil {
		return nil, fmt.Errorf("%w: respuesta de login sin usuario", domain.ErrRemoto)
	}
	return out.Usuario, nil
}

// Listar devuelve los usuarios del directorio.
func (c *Client) Listar(ctx context.Context, token string) ([]entity.Usuario, error) {
	var lista []entity.Usuario
	if err := c.doJSON(ctx, http.MethodGet, "/usuarios", token, nil, &lista); err != nil {
		return nil, err
	}
	return lista, nil
}

// RegistrarUsuario da de alta un usuario con rol explícito.
func (c *Client) RegistrarUsuario(ctx context.Context, token string, in dto.RegistroUsuarioRequest) (*entity.Usuario, error) {
	var u entity.Usuario
	if err := c.doJSON(ctx, http.MethodPost, "/usuarios/registro", token, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ActualizarUsuario modifica un usuario existente.
func (c *Client) ActualizarUsuario(ctx context.Context, token, id string, in dto.ActualizarUsuarioRequest) (*entity.Usuario, error) {
	var u entity.Usuario
	if err := c.doJSON(ctx, http.MethodPut, "/usuarios/"+url.PathEscape(id), token, in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CambiarContrasena cambia la contraseña del usuario autenticado.
func (c *Client) CambiarContrasena(ctx context.Context, token string, in dto.CambiarContrasenaRequest) error {
	return c.doJSON(ctx, http.MethodPut, "/usuarios/cambiar-contrasena", token, in, nil)
}

// RecuperarContrasena dispara la recuperación por email.
func (c *Client) RecuperarContrasena(ctx context.Context, email string) error {
	body := dto.RecuperarContrasenaRequest{Email: email}
	return c.doJSON(ctx, http.MethodPost, "/usuarios/recuperar-contrasena", "", body, nil)
}
