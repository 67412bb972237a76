package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/application/editor"
	"github.com/jhoicas/facturador/internal/application/export"
	"github.com/jhoicas/facturador/internal/domain/document"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoice"
	"github.com/jhoicas/facturador/internal/infrastructure/markup"
	"github.com/jhoicas/facturador/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/facturador/internal/interfaces/http"
	"github.com/jhoicas/facturador/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type brokenEngine struct{}

func (brokenEngine) Name() string { return "roto" }
func (brokenEngine) Paginate(context.Context, export.View) ([]byte, error) {
	return nil, errors.New("fuente no encontrada: /usr/share/fonts/secreto.ttf")
}

// slowEngine tarda más que cualquier timeout de test.
type slowEngine struct{ delay time.Duration }

func (slowEngine) Name() string { return "lento" }
func (e slowEngine) Paginate(context.Context, export.View) ([]byte, error) {
	time.Sleep(e.delay)
	return []byte("%PDF-1.3\n<</Type /Page\n>>"), nil
}

// buildTestApp construye la aplicación con el router real y el motor indicado.
func buildTestApp(t *testing.T, engine export.LayoutEngine) *fiber.App {
	t.Helper()
	return buildTestAppWithTimeout(t, engine, 0)
}

func buildTestAppWithTimeout(t *testing.T, engine export.LayoutEngine, timeout time.Duration) *fiber.App {
	t.Helper()
	exporter := export.NewService(markup.MustNewHTMLRenderer(), engine, logger.Nop())
	svc := editor.NewService(editor.NewStore(), invoice.NewFactory(), exporter, "en", logger.Nop())
	t.Cleanup(svc.Store().Close)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Editor:        svc,
		AppName:       "facturador-test",
		Engine:        engine.Name(),
		ExportTimeout: timeout,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createSession(t *testing.T, app *fiber.App) dto.SessionResponse {
	t.Helper()
	resp := do(t, app, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.SessionResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	createSession(t, app)

	resp := do(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	h := decode[dto.HealthResponse](t, resp)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "maroto", h.Engine)
	assert.Equal(t, 1, h.Sessions)
}

func TestSession_CrearYLeer(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "en", s.Locale)
	assert.Regexp(t, invoice.InvoiceNumberPattern, s.Invoice.InvoiceNumber)
	assert.Equal(t, "714.00", s.Totals.Total.StringFixed(2))

	resp := do(t, app, http.MethodGet, "/api/sessions/"+s.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, s.Invoice.InvoiceNumber, got.Invoice.InvoiceNumber)
}

func TestSession_CrearConLocale(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())

	resp := do(t, app, http.MethodPost, "/api/sessions", dto.CreateSessionRequest{Locale: "de-CH"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "de", decode[dto.SessionResponse](t, resp).Locale)
}

func TestSession_Inexistente(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())

	for _, path := range []string{"/api/sessions/nope", "/api/sessions/nope/totals", "/api/sessions/nope/export/pdf"} {
		resp := do(t, app, http.MethodGet, path, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "SESSION_NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
	}
}

func TestSession_Cerrar(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)

	resp := do(t, app, http.MethodDelete, "/api/sessions/"+s.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = do(t, app, http.MethodGet, "/api/sessions/"+s.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSetField(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)
	base := "/api/sessions/" + s.ID + "/fields/"

	resp := do(t, app, http.MethodPut, base+"vendor.name", map[string]any{"value": "Acme GmbH"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme GmbH", decode[dto.SessionResponse](t, resp).Invoice.Vendor.Name)

	resp = do(t, app, http.MethodPut, base+"taxRate", map[string]any{"value": "abc"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.SessionResponse](t, resp)
	assert.True(t, got.Invoice.TaxRate.IsZero())
	assert.Equal(t, "600.00", got.Totals.Total.StringFixed(2))

	resp = do(t, app, http.MethodPut, base+"template", map[string]any{"value": "baroque"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = do(t, app, http.MethodPut, base+"nope", map[string]any{"value": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLineItems(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)
	base := "/api/sessions/" + s.ID + "/line-items"

	resp := do(t, app, http.MethodPost, base, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	added := decode[dto.LineItemResponse](t, resp)
	assert.Equal(t, 1, added.Item.Quantity)
	assert.Equal(t, entity.UnitPC, added.Item.Unit)
	assert.Len(t, added.Session.Invoice.LineItems, 3)

	resp = do(t, app, http.MethodPatch, base+"/"+added.Item.ID, map[string]any{"quantity": "abc", "price": 12.5, "unit": "KG"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decode[dto.SessionResponse](t, resp)
	it := updated.Invoice.LineItems[2]
	assert.Equal(t, 1, it.Quantity)
	assert.Equal(t, "12.5", it.Price.String())
	assert.Equal(t, entity.UnitKG, it.Unit)

	resp = do(t, app, http.MethodPatch, base+"/"+added.Item.ID, map[string]any{"unit": "LB"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	for _, item := range updated.Invoice.LineItems[:2] {
		resp = do(t, app, http.MethodDelete, base+"/"+item.ID, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp = do(t, app, http.MethodDelete, base+"/"+added.Item.ID, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "LAST_LINE_ITEM", decode[dto.ErrorResponse](t, resp).Code)
}

func TestResetYNumero(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)

	resp := do(t, app, http.MethodPost, "/api/sessions/"+s.ID+"/invoice-number", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Regexp(t, invoice.InvoiceNumberPattern, decode[dto.SessionResponse](t, resp).Invoice.InvoiceNumber)

	do(t, app, http.MethodPut, "/api/sessions/"+s.ID+"/fields/vendor.name", map[string]any{"value": "Otra"})
	resp = do(t, app, http.MethodPost, "/api/sessions/"+s.ID+"/reset", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, invoice.DefaultVendorName, decode[dto.SessionResponse](t, resp).Invoice.Vendor.Name)
}

func TestTotals(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)

	resp := do(t, app, http.MethodGet, "/api/sessions/"+s.ID+"/totals", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	tot := decode[entity.InvoiceTotals](t, resp)
	assert.Equal(t, "600.00", tot.Subtotal.StringFixed(2))
	assert.Equal(t, "114.00", tot.TaxAmount.StringFixed(2))
	assert.Equal(t, "714.00", tot.Total.StringFixed(2))
}

func TestDocumentYPreview(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)

	resp := do(t, app, http.MethodGet, "/api/sessions/"+s.ID+"/document?locale=de", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	doc := decode[document.Document](t, resp)
	assert.Equal(t, document.LocaleDE, doc.Lang)
	assert.Equal(t, "RECHNUNG", doc.Heading)

	resp = do(t, app, http.MethodGet, "/api/sessions/"+s.ID+"/preview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "RECHNUNG", "la preferencia de locale se conserva")
}

func TestExportHTML(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)

	resp := do(t, app, http.MethodGet, "/api/sessions/"+s.ID+"/export/html", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Invoice-"+s.Invoice.InvoiceNumber+".html")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
}

func TestExportPDF(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())
	s := createSession(t, app)

	resp := do(t, app, http.MethodGet, "/api/sessions/"+s.ID+"/export/pdf?filename=mi-factura", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "mi-factura.pdf")
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestExportPDF_FalloGenerico(t *testing.T) {
	app := buildTestApp(t, brokenEngine{})
	s := createSession(t, app)

	resp := do(t, app, http.MethodGet, "/api/sessions/"+s.ID+"/export/pdf", nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "EXPORT_FAILED", e.Code)
	assert.Equal(t, "export failed", e.Message)
	assert.False(t, strings.Contains(e.Message, "secreto"), "la causa no sale al cliente")
}

func TestExportPDF_Timeout(t *testing.T) {
	app := buildTestAppWithTimeout(t, slowEngine{delay: 300 * time.Millisecond}, 20*time.Millisecond)
	s := createSession(t, app)

	resp := do(t, app, http.MethodGet, "/api/sessions/"+s.ID+"/export/pdf", nil)
	require.Equal(t, fiber.StatusGatewayTimeout, resp.StatusCode)
	e := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "EXPORT_TIMEOUT", e.Code)
}

func TestOptions(t *testing.T) {
	app := buildTestApp(t, pdf.NewMarotoEngine())

	resp := do(t, app, http.MethodGet, "/api/options?locale=de", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	o := decode[dto.OptionsResponse](t, resp)
	assert.Equal(t, "de", o.Locale)
	require.Len(t, o.Templates, 3)
	assert.Equal(t, "Klassisch", o.Templates[0].Label)
	require.Len(t, o.Currencies, 4)
	assert.Equal(t, "€", o.Currencies[0].Symbol)
	assert.Len(t, o.Units, 8)
	assert.Equal(t, []string{"en", "de"}, o.Locales)
	assert.Equal(t, editor.Fields, o.Fields)
}
