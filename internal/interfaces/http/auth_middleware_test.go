package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/guardias-api/internal/application/dto"
	"github.com/jhoicas/guardias-api/internal/domain/entity"
	apphttp "github.com/jhoicas/guardias-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/guardias-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "guardias-api-test"
	testExpMin    = 60
)

// buildMiddlewareApp monta AuthMiddleware delante de un handler que devuelve la identidad cargada.
func buildMiddlewareApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(apphttp.CallerFrom(c))
	})
	return app
}

func bearer(t *testing.T, secret string, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, id, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoCargaLaIdentidad(t *testing.T) {
	app := buildMiddlewareApp()
	resp := getProtected(t, app, bearer(t, testJWTSecret, pkgjwt.Identity{UserID: 7, RoleID: 2, DelegationID: 3}))
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var caller entity.Caller
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&caller))
	assert.Equal(t, entity.Caller{UserID: 7, RoleID: 2, DelegationID: 3}, caller)
}

func TestAuthMiddleware_SinCabecera(t *testing.T) {
	resp := getProtected(t, buildMiddlewareApp(), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoIncorrecto(t *testing.T) {
	resp := getProtected(t, buildMiddlewareApp(), "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FirmaDeOtroSecreto(t *testing.T) {
	header := bearer(t, "otro-secreto", pkgjwt.Identity{UserID: 7, RoleID: 2, DelegationID: 3})
	resp := getProtected(t, buildMiddlewareApp(), header)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenBasura(t *testing.T) {
	resp := getProtected(t, buildMiddlewareApp(), "Bearer no.es.un.jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}
