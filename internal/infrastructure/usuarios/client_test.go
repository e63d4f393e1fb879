package usuarios

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqualab/aqualab-api/internal/application/dto"
	"github.com/aqualab/aqualab-api/internal/domain"
)

func nuevoServidor(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, 5*time.Second)
}

func TestBuscarPorDocumento_Encontrado(t *testing.T) {
	var capturado *http.Request
	_, c := nuevoServidor(t, func(w http.ResponseWriter, r *http.Request) {
		capturado = r
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"_id": "u-9", "documento": "999", "nombre": "Cliente", "rol": "cliente",
		})
	})

	u, err := c.BuscarPorDocumento(context.Background(), "tok", "999")
	require.NoError(t, err)
	assert.Equal(t, "999", u.Documento)
	assert.Equal(t, "Cliente", u.Nombre)

	require.NotNil(t, capturado)
	assert.Equal(t, "Bearer tok", capturado.Header.Get("Authorization"))
	assert.Equal(t, "999", capturado.URL.Query().Get("documento"))
}

func TestBuscarPorDocumento_RespuestaVaciaEsNotFound(t *testing.T) {
	_, c := nuevoServidor(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{})
	})

	_, err := c.BuscarPorDocumento(context.Background(), "tok", "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMapeoDeEstados(t *testing.T) {
	casos := []struct {
		nombre  string
		status  int
		cuerpo  string
		wantErr error
	}{
		{"401 es sesión expirada", http.StatusUnauthorized, `{}`, domain.ErrSesionExpirada},
		{"403 es sesión expirada", http.StatusForbidden, `{}`, domain.ErrSesionExpirada},
		{"404 es not found", http.StatusNotFound, `{}`, domain.ErrNotFound},
		{"500 es error remoto", http.StatusInternalServerError, `{}`, domain.ErrRemoto},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, c := nuevoServidor(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.cuerpo))
			})
			_, err := c.Listar(context.Background(), "tok")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestMensajeDelServidorSePropaga(t *testing.T) {
	_, c := nuevoServidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "documento duplicado"})
	})

	_, err := c.Listar(context.Background(), "tok")
	require.ErrorIs(t, err, domain.ErrRemoto)
	assert.Contains(t, err.Error(), "documento duplicado")
}

func TestLogin_CredencialesRechazadasSonPermisoDenegado(t *testing.T) {
	_, c := nuevoServidor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "credenciales inválidas"})
	})

	_, err := c.Login(context.Background(), dto.LoginRequest{Email: "a@b.test", Password: "x"})
	// Un 401 del login no es una sesión expirada: son credenciales malas.
	assert.ErrorIs(t, err, domain.ErrPermisoDenegado)
	assert.NotErrorIs(t, err, domain.ErrSesionExpirada)
}

func TestLogin_Exitoso(t *testing.T) {
	_, c := nuevoServidor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/usuarios/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"usuario": map[string]interface{}{
				"_id": "u-1", "documento": "111", "nombre": "Admin", "rol": "administrador",
			},
		})
	})

	u, err := c.Login(context.Background(), dto.LoginRequest{Email: "a@b.test", Password: "secreta-123"})
	require.NoError(t, err)
	assert.Equal(t, "administrador", string(u.Rol))
}

func TestRegistrarCliente_FuerzaTipoCliente(t *testing.T) {
	var cuerpo map[string]interface{}
	_, c := nuevoServidor(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cuerpo))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"documento": "555", "rol": "cliente"})
	})

	_, err := c.RegistrarCliente(context.Background(), "tok", dto.RegistroClienteRequest{
		Nombre: "Nuevo", Documento: "555", Email: "n@c.test", Password: "secreta-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "cliente", cuerpo["tipo"], "el alta inline siempre registra con tipo cliente")
}
