package export

import (
	"context"

	"github.com/jhoicas/facturador/internal/domain/document"
)

// MarkupRenderer serializa un documento como markup autocontenido.
type MarkupRenderer interface {
	RenderMarkup(doc document.Document) ([]byte, error)
}

// View presentación ya renderizada de una superficie: el documento y su markup.
// Los motores reciben una copia; no la comparten con la superficie.
type View struct {
	Document document.Document
	Markup   []byte
}

// LayoutEngine pagina una vista renderizada en un documento de páginas fijas
// (A4 vertical) y devuelve sus bytes.
type LayoutEngine interface {
	Name() string
	Paginate(ctx context.Context, view View) ([]byte, error)
}
