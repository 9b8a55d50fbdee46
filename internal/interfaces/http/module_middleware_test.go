package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/dmarulanda/ventas-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireModule — gating de módulos contratables por empresa
// ──────────────────────────────────────────────────────────────────────────────

// fakeModuleChecker responde según el mapa de activaciones o falla siempre.
type fakeModuleChecker struct {
	active   map[string]bool
	checkErr error
}

func (f *fakeModuleChecker) HasActiveModule(_ context.Context, _, moduleName string) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.active[moduleName], nil
}

func buildModuleApp(checker *fakeModuleChecker) *fiber.App {
	app := fiber.New()
	app.Get("/gated",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireModule("imports", checker),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

func doGatedRequest(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireModule_ModuloActivo_Pasa(t *testing.T) {
	app := buildModuleApp(&fakeModuleChecker{active: map[string]bool{"imports": true}})
	resp := doGatedRequest(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireModule_ModuloInactivo_Retorna403(t *testing.T) {
	app := buildModuleApp(&fakeModuleChecker{active: map[string]bool{}})
	resp := doGatedRequest(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"módulo no contratado o vencido debe responder 403")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_DISABLED")
}

// La consulta de activación que falla no es culpa del cliente: 503, no 403.
func TestRequireModule_FallaVerificacion_Retorna503(t *testing.T) {
	app := buildModuleApp(&fakeModuleChecker{checkErr: assert.AnError})
	resp := doGatedRequest(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MODULE_CHECK_FAILED")
}
