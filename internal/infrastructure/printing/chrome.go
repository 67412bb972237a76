// Package printing implementa el motor de páginas fijas que imprime el markup
// de la vista previa con Chrome headless vía DevTools Protocol. Produce un PDF
// idéntico a lo que se ve en pantalla.
package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jhoicas/facturador/internal/application/export"
	"github.com/jhoicas/facturador/pkg/logger"
)

// EngineName nombre del motor en configuración y logs.
const EngineName = "chrome"

const (
	defaultTimeout = 30 * time.Second
	defaultScale   = 1.0

	// A4 vertical en milímetros.
	a4WidthMM  = 210.0
	a4HeightMM = 297.0
	// Margen uniforme de la página.
	defaultMarginMM = 10.0
)

// Códigos de RenderError.
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// RenderError fallo de impresión con un código estable.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

// NewRenderError construye un RenderError.
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("printing: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("printing: %s: %s", e.Code, e.Message)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// Config configuración del motor.
type Config struct {
	// Timeout de cada impresión; 0 usa 30s.
	Timeout time.Duration
	// RemoteURL websocket de un Chrome ya levantado. Vacío lanza un proceso local.
	RemoteURL string
	// NoSandbox necesario cuando Chrome corre como root (contenedores).
	NoSandbox bool
	// Scale factor de escala de la impresión; 0 usa 1.0.
	Scale float64
	// MarginMM margen de la página; 0 usa 10 mm.
	MarginMM float64
}

// ChromeEngine implementa export.LayoutEngine.
type ChromeEngine struct {
	cfg         Config
	log         *logger.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

var _ export.LayoutEngine = (*ChromeEngine)(nil)

// NewChromeEngine prepara el allocator. El navegador arranca con la primera
// impresión, no aquí.
func NewChromeEngine(cfg Config, log *logger.Logger) *ChromeEngine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Scale <= 0 {
		cfg.Scale = defaultScale
	}
	if cfg.MarginMM <= 0 {
		cfg.MarginMM = defaultMarginMM
	}
	if log == nil {
		log = logger.Nop()
	}

	e := &ChromeEngine{cfg: cfg, log: log.WithComponent("printing")}
	if cfg.RemoteURL != "" {
		e.allocCtx, e.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-first-run", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-background-networking", true),
			chromedp.Flag("font-render-hinting", "none"),
		)
		if cfg.NoSandbox {
			opts = append(opts, chromedp.Flag("no-sandbox", true))
		}
		e.allocCtx, e.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
	return e
}

// Name implementa export.LayoutEngine.
func (e *ChromeEngine) Name() string { return EngineName }

// Paginate carga el markup de la vista en una pestaña nueva y la imprime en A4.
func (e *ChromeEngine) Paginate(ctx context.Context, view export.View) ([]byte, error) {
	if len(bytes.TrimSpace(view.Markup)) == 0 {
		return nil, NewRenderError(ErrCodeInvalidHTML, "markup vacío", nil)
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(e.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			e.log.Debug().Msgf(format, args...)
		}),
	)
	defer tabCancel()
	// la pestaña muere con el timeout de esta impresión
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	params := e.buildPrintParams()
	html := string(view.Markup)

	var data []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			data = out
			return nil
		}),
	)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("la impresión superó %v", e.cfg.Timeout), err)
		case errors.Is(ctx.Err(), context.Canceled):
			return nil, NewRenderError(ErrCodeRenderTimeout, "impresión cancelada", err)
		}
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp", err)
	}
	if len(data) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "PDF vacío", nil)
	}

	e.log.Debug().
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("PDF impreso")
	return data, nil
}

// buildPrintParams A4 vertical, márgenes uniformes y fondos impresos (el
// markup usa fondos para cabeceras y bloques).
func (e *ChromeEngine) buildPrintParams() *page.PrintToPDFParams {
	m := mmToInches(e.cfg.MarginMM)
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(mmToInches(a4WidthMM)).
		WithPaperHeight(mmToInches(a4HeightMM)).
		WithMarginTop(m).
		WithMarginRight(m).
		WithMarginBottom(m).
		WithMarginLeft(m).
		WithScale(e.cfg.Scale).
		WithLandscape(false).
		WithPreferCSSPageSize(false)
}

// Close libera el allocator (y el proceso de Chrome si se lanzó uno).
func (e *ChromeEngine) Close() error {
	if e.allocCancel != nil {
		e.allocCancel()
	}
	return nil
}

// Chrome usa pulgadas.
func mmToInches(mm float64) float64 {
	return mm / 25.4
}
