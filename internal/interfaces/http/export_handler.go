package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador/internal/application/editor"
	"github.com/jhoicas/facturador/internal/application/export"
)

// ExportHandler vista previa, documento estructurado y archivos exportados.
type ExportHandler struct {
	svc     *editor.Service
	timeout time.Duration
}

// NewExportHandler construye el handler. timeout acota la espera de la
// exportación PDF; vencido responde 504 y el trabajo sigue en la cola.
func NewExportHandler(svc *editor.Service, timeout time.Duration) *ExportHandler {
	return &ExportHandler{svc: svc, timeout: timeout}
}

// Document godoc
// @Summary      Documento estructurado
// @Description  Secciones en orden fijo con textos del locale. locale, si viene, pasa a ser el de la sesión.
// @Tags         export
// @Produce      json
// @Param        id      path      string  true   "id de sesión"
// @Param        locale  query     string  false  "en, de, de-DE…; desconocido cae en en"
// @Success      200     {object}  document.Document
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/document [get]
func (h *ExportHandler) Document(c *fiber.Ctx) error {
	doc, err := h.svc.Document(GetSessionID(c), c.Query("locale"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(doc)
}

// Preview godoc
// @Summary      Vista previa
// @Description  El mismo HTML autocontenido que produce la exportación.
// @Tags         export
// @Produce      html
// @Param        id      path      string  true   "id de sesión"
// @Param        locale  query     string  false  "locale"
// @Success      200     {string}  string
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/preview [get]
func (h *ExportHandler) Preview(c *fiber.Ctx) error {
	html, err := h.svc.Preview(GetSessionID(c), c.Query("locale"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, export.ContentTypeHTML)
	return c.Send(html)
}

// ExportHTML godoc
// @Summary      Exportar HTML
// @Tags         export
// @Produce      html
// @Param        id        path      string  true   "id de sesión"
// @Param        locale    query     string  false  "locale"
// @Param        filename  query     string  false  "nombre del archivo; por defecto Invoice-{número}"
// @Success      200       {file}    file
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse  "EXPORT_FAILED"
// @Router       /api/sessions/{id}/export/html [get]
func (h *ExportHandler) ExportHTML(c *fiber.Ctx) error {
	res, err := h.svc.ExportHTML(GetSessionID(c), c.Query("locale"), export.Options{Filename: c.Query("filename")})
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, res)
}

// ExportPDF godoc
// @Summary      Exportar PDF
// @Description  A4 vertical, paginado. Las exportaciones de una misma sesión se atienden de a una.
// @Tags         export
// @Produce      application/pdf
// @Param        id        path      string  true   "id de sesión"
// @Param        locale    query     string  false  "locale"
// @Param        filename  query     string  false  "nombre del archivo; por defecto Invoice-{número}"
// @Success      200       {file}    file
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse  "EXPORT_FAILED"
// @Failure      504       {object}  dto.ErrorResponse
// @Router       /api/sessions/{id}/export/pdf [get]
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	res, err := h.svc.ExportPDF(ctx, GetSessionID(c), c.Query("locale"), export.Options{Filename: c.Query("filename")})
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, res)
}

func sendFile(c *fiber.Ctx, res export.Result) error {
	c.Attachment(res.Filename)
	c.Set(fiber.HeaderContentType, res.ContentType)
	return c.Send(res.Data)
}
