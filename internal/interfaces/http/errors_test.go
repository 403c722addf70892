package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	apphttp "github.com/jhoicas/backoffice-api/internal/interfaces/http"
)

// appForError construye una app Fiber cuyo único handler responde el error dado
// a través del mapper.
func appForError(mapper apphttp.ErrorMapper, err error) *fiber.App {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return mapper.Write(c, err)
	})
	return app
}

func fireRequest(t *testing.T, app *fiber.App) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo cerrado kind → status
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorMapper_MapeoDeKinds(t *testing.T) {
	cases := []struct {
		kind   domain.ErrorKind
		status int
	}{
		{domain.KindValidation, http.StatusBadRequest},
		{domain.KindNotFound, http.StatusBadRequest},
		{domain.KindUnique, http.StatusBadRequest},
		{domain.KindAuthentication, http.StatusUnauthorized},
		{domain.KindPermission, http.StatusForbidden},
		{domain.KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			app := appForError(apphttp.ErrorMapper{}, domain.NewError(tc.kind, "mensaje de prueba"))
			resp, body := fireRequest(t, app)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.False(t, body.Success)
			assert.Equal(t, "mensaje de prueba", body.Message)
		})
	}
}

func TestErrorMapper_ErrorGenericoEs500(t *testing.T) {
	app := appForError(apphttp.ErrorMapper{}, fmt.Errorf("fallo de infraestructura"))
	resp, body := fireRequest(t, app)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, body.Success)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exposición de detalles según entorno
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorMapper_DetallesExpuestosFueraDeProduccion(t *testing.T) {
	err := domain.NewError(domain.KindValidation, "regiones inexistentes").
		WithDetails(map[string]any{"missing": []string{"r-9"}})

	app := appForError(apphttp.ErrorMapper{ExposeDetails: true}, err)
	_, body := fireRequest(t, app)

	require.NotNil(t, body.Details)
	assert.Contains(t, body.Details, "missing")
}

func TestErrorMapper_DetallesOcultosEnProduccion(t *testing.T) {
	err := domain.NewError(domain.KindValidation, "regiones inexistentes").
		WithDetails(map[string]any{"missing": []string{"r-9"}})

	app := appForError(apphttp.ErrorMapper{ExposeDetails: false}, err)
	resp, body := fireRequest(t, app)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, body.Details, "en producción no se exponen detalles internos")
	assert.Equal(t, "regiones inexistentes", body.Message, "el mensaje sí se preserva")
}
