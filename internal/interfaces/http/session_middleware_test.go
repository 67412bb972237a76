package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/application/editor"
	"github.com/jhoicas/facturador/internal/application/export"
	"github.com/jhoicas/facturador/internal/domain/invoice"
	"github.com/jhoicas/facturador/internal/infrastructure/markup"
	"github.com/jhoicas/facturador/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/facturador/internal/interfaces/http"
	"github.com/jhoicas/facturador/pkg/logger"
)

func TestRequireSession(t *testing.T) {
	exporter := export.NewService(markup.MustNewHTMLRenderer(), pdf.NewMarotoEngine(), logger.Nop())
	svc := editor.NewService(editor.NewStore(), invoice.NewFactory(), exporter, "en", logger.Nop())
	t.Cleanup(svc.Store().Close)
	snap, err := svc.Create("")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/s/:id", apphttp.RequireSession(svc.Store()), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetSessionID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/s/"+snap.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "una sesión viva pasa")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/s/otra", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "una sesión desconocida no llega al handler")
}
