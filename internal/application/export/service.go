// Package export orquesta las dos exportaciones de una factura: markup
// autocontenido (síncrona) y documento de páginas fijas (asíncrona, una a la vez
// por superficie). Cualquier fallo se devuelve como *domain.ExportError.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/document"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/pkg/logger"
)

// Tipos de contenido de los archivos producidos.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

// Options opciones de exportación. Filename reemplaza el nombre derivado del
// número de factura.
type Options struct {
	Filename string
}

// Result archivo exportado.
type Result struct {
	Filename    string
	ContentType string
	Data        []byte
	Pages       int // solo para páginas fijas
}

// Service caso de uso de exportación.
type Service struct {
	markup MarkupRenderer
	engine LayoutEngine
	log    *logger.Logger
}

// NewService construye el servicio inyectando el renderer de markup y el motor de páginas.
func NewService(markup MarkupRenderer, engine LayoutEngine, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{markup: markup, engine: engine, log: log.WithComponent("export")}
}

// Render construye documento y markup para la factura. Es también la vista
// previa que se muestra en vivo.
func (s *Service) Render(inv entity.Invoice, totals entity.InvoiceTotals, locale string) (document.Document, []byte, error) {
	doc := document.Render(inv, totals, locale)
	markup, err := s.markup.RenderMarkup(doc)
	if err != nil {
		return doc, nil, fmt.Errorf("export: renderizar markup: %w", err)
	}
	return doc, markup, nil
}

// Refresh vuelve a renderizar la superficie con el estado actual de la factura.
func (s *Service) Refresh(surface *Surface, inv entity.Invoice, totals entity.InvoiceTotals, locale string) error {
	doc, markup, err := s.Render(inv, totals, locale)
	if err != nil {
		return err
	}
	surface.Update(doc, markup)
	return nil
}

// ExportMarkup genera el archivo HTML autocontenido.
func (s *Service) ExportMarkup(inv entity.Invoice, totals entity.InvoiceTotals, locale string, opts Options) (Result, error) {
	filename := FileName(opts, inv.InvoiceNumber, domain.FormatHTML)
	_, markup, err := s.Render(inv, totals, locale)
	if err != nil {
		return Result{}, s.fail(domain.FormatHTML, filename, err)
	}
	s.log.Info().Str("format", domain.FormatHTML).Str("filename", filename).Int("bytes", len(markup)).Msg("exportación generada")
	return Result{Filename: filename, ContentType: ContentTypeHTML, Data: markup}, nil
}

// ExportFixedLayout encola la paginación de la superficie y devuelve el
// resultado futuro. Las exportaciones de una misma superficie nunca se solapan.
func (s *Service) ExportFixedLayout(ctx context.Context, surface *Surface, opts Options) *Pending {
	p, err := surface.submit(ctx, func(ctx context.Context, view View) (Result, error) {
		filename := FileName(opts, view.Document.InvoiceNumber, domain.FormatPDF)
		if len(view.Markup) == 0 && view.Document.Title == "" {
			return Result{}, s.fail(domain.FormatPDF, filename, errors.New("superficie sin renderizar"))
		}
		data, err := s.paginate(ctx, view)
		if err != nil {
			return Result{}, s.fail(domain.FormatPDF, filename, err)
		}
		pages := CountPages(data)
		s.log.Info().
			Str("format", domain.FormatPDF).
			Str("engine", s.engine.Name()).
			Str("surface", surface.ID()).
			Str("filename", filename).
			Int("pages", pages).
			Int("bytes", len(data)).
			Msg("exportación generada")
		return Result{Filename: filename, ContentType: ContentTypePDF, Data: data, Pages: pages}, nil
	})
	if err != nil {
		filename := FileName(opts, surface.View().Document.InvoiceNumber, domain.FormatPDF)
		return failedPending(s.fail(domain.FormatPDF, filename, err))
	}
	return p
}

// paginate protege al llamador de un pánico del motor.
func (s *Service) paginate(ctx context.Context, view View) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("export: motor %s: pánico: %v", s.engine.Name(), r)
		}
	}()
	data, err = s.engine.Paginate(ctx, view)
	if err == nil && len(data) == 0 {
		err = fmt.Errorf("export: motor %s: documento vacío", s.engine.Name())
	}
	return data, err
}

// fail registra la causa y la envuelve en el error uniforme de exportación.
func (s *Service) fail(format, filename string, cause error) error {
	s.log.Error().Err(cause).Str("format", format).Str("filename", filename).Msg("exportación fallida")
	var exportErr *domain.ExportError
	if errors.As(cause, &exportErr) {
		return exportErr
	}
	return domain.NewExportError(format, cause)
}

// FileName nombre del archivo: override o Invoice-{número}, siempre con extensión.
func FileName(opts Options, invoiceNumber, ext string) string {
	name := strings.TrimSpace(opts.Filename)
	name = strings.NewReplacer("/", "_", "\\", "_", "\"", "").Replace(name)
	if name == "" {
		name = "Invoice-" + invoiceNumber
	}
	if !strings.HasSuffix(strings.ToLower(name), "."+ext) {
		name += "." + ext
	}
	return name
}

// CountPages estima las páginas contando los objetos /Type /Page del PDF.
func CountPages(pdf []byte) int {
	count := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	return max(count, 1)
}
