package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturador/internal/application/dto"
	"github.com/jhoicas/facturador/internal/application/editor"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Editor  *editor.Service
	AppName string
	Engine  string // motor de páginas fijas activo, informado en /health

	ExportTimeout time.Duration // espera máxima de GET /export/pdf; 0 = sin límite
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{
			Status:   "ok",
			App:      deps.AppName,
			Engine:   deps.Engine,
			Sessions: deps.Editor.Store().Len(),
		})
	})

	api := app.Group("/api")
	api.Get("/options", Options)

	sessionHandler := NewSessionHandler(deps.Editor)
	exportHandler := NewExportHandler(deps.Editor, deps.ExportTimeout)

	api.Post("/sessions", sessionHandler.Create)

	// Rutas de una sesión existente
	session := api.Group("/sessions/:id", RequireSession(deps.Editor.Store()))
	session.Get("/", sessionHandler.Get)
	session.Delete("/", sessionHandler.Delete)
	session.Put("/fields/:field", sessionHandler.SetField)
	session.Post("/line-items", sessionHandler.AddLineItem)
	session.Patch("/line-items/:itemId", sessionHandler.UpdateLineItem)
	session.Delete("/line-items/:itemId", sessionHandler.RemoveLineItem)
	session.Post("/reset", sessionHandler.Reset)
	session.Post("/invoice-number", sessionHandler.RegenerateInvoiceNumber)
	session.Get("/totals", sessionHandler.Totals)

	session.Get("/document", exportHandler.Document)
	session.Get("/preview", exportHandler.Preview)
	session.Get("/export/html", exportHandler.ExportHTML)
	session.Get("/export/pdf", exportHandler.ExportPDF)
}
