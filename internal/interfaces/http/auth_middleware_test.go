package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqualab/aqualab-api/internal/domain/entity"
	apphttp "github.com/aqualab/aqualab-api/internal/interfaces/http"
	pkgjwt "github.com/aqualab/aqualab-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "aqualab-api-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar la sesión
//   - RequireRol para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(roles ...entity.Rol) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRol(roles...),
		func(c *fiber.Ctx) error {
			ses := apphttp.GetSesion(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":  true,
				"rol": string(ses.Rol),
			})
		},
	)
	return app
}

// tokenForRol genera un JWT con el rol indicado.
func tokenForRol(t *testing.T, rol string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionData{
		UserID:    "u-1",
		Documento: "1098765432",
		Nombre:    "Usuario de Prueba",
		Email:     "test@lab.test",
		Rol:       rol,
	}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRol
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRol_AdministradorAccede(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, tokenForRol(t, "administrador"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "administrador", body["rol"])
}

// super_admin pasa por cualquier ruta que admita administrador.
func TestRequireRol_SuperAdminHeredaAdministrador(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, tokenForRol(t, "super_admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRol_LaboratoristaBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, tokenForRol(t, "laboratorista"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRol_MultiRol(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador, entity.RolLaboratorista)
	resp := doRequest(t, app, tokenForRol(t, "laboratorista"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRol_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionData{UserID: "u-1"}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestRequireRol_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRol_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RolAdministrador)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — la sesión queda resuelta en locals
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ResuelveLaSesion(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		ses := apphttp.GetSesion(c)
		return c.JSON(fiber.Map{
			"user_id":   ses.UserID,
			"documento": ses.Documento,
			"rol":       string(ses.Rol),
			"con_token": ses.Token != "",
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRol(t, "laboratorista"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-1", body["user_id"])
	assert.Equal(t, "1098765432", body["documento"])
	assert.Equal(t, "laboratorista", body["rol"])
	assert.Equal(t, true, body["con_token"], "la sesión debe conservar el token para reenviarlo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	data := pkgjwt.SessionData{
		UserID:    "u-1",
		Documento: "1098765432",
		Nombre:    "Usuario",
		Email:     "u@lab.test",
		Rol:       "administrador",
	}
	tok, err := pkgjwt.Generate(testJWTSecret, data, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	parsed, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, data, *parsed)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionData{UserID: "u-1", Rol: "administrador"}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.SessionData{UserID: "u-1", Rol: "administrador"}, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
