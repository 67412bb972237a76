// Package bootstrap arma las dependencias compartidas por la API y el CLI a
// partir de la configuración.
package bootstrap

import (
	"fmt"

	"github.com/jhoicas/facturador/internal/application/editor"
	"github.com/jhoicas/facturador/internal/application/export"
	"github.com/jhoicas/facturador/internal/domain/invoice"
	"github.com/jhoicas/facturador/internal/infrastructure/markup"
	"github.com/jhoicas/facturador/internal/infrastructure/pdf"
	"github.com/jhoicas/facturador/internal/infrastructure/printing"
	"github.com/jhoicas/facturador/pkg/config"
	"github.com/jhoicas/facturador/pkg/logger"
)

// App dependencias armadas.
type App struct {
	Engine   export.LayoutEngine
	Exporter *export.Service
	Editor   *editor.Service

	closers []func() error
}

// New arma exportador, motor de páginas y editor.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	renderer, err := markup.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	a := &App{}
	a.Engine, err = a.layoutEngine(cfg, log)
	if err != nil {
		return nil, err
	}
	a.Exporter = export.NewService(renderer, a.Engine, log)
	a.Editor = editor.NewService(editor.NewStore(), invoice.NewFactory(), a.Exporter, cfg.Session.DefaultLocale, log)
	a.closers = append(a.closers, func() error { a.Editor.Store().Close(); return nil })
	return a, nil
}

func (a *App) layoutEngine(cfg *config.Config, log *logger.Logger) (export.LayoutEngine, error) {
	switch cfg.Export.PDFEngine {
	case config.EngineMaroto, "":
		return pdf.NewMarotoEngine(), nil
	case config.EngineChrome:
		e := printing.NewChromeEngine(printing.Config{
			Timeout:   cfg.Chrome.Timeout,
			RemoteURL: cfg.Chrome.RemoteURL,
			NoSandbox: cfg.Chrome.NoSandbox,
		}, log)
		a.closers = append(a.closers, e.Close)
		return e, nil
	}
	return nil, fmt.Errorf("bootstrap: motor %q no soportado", cfg.Export.PDFEngine)
}

// Close cierra sesiones y libera el navegador si lo hay.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
