// Package markup genera el documento HTML autocontenido de una factura: estilos
// en línea, sin recursos externos, apto para abrir o imprimir por sí solo.
package markup

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/jhoicas/facturador/internal/domain/document"
	"github.com/jhoicas/facturador/internal/domain/entity"
)

//go:embed templates/*.html.tmpl
var templatesFS embed.FS

// alineación de las columnas de la tabla de líneas: cantidad y unidad
// centradas, importes a la derecha.
var columnClasses = []string{"", "", "center", "center", "right", "right"}

// HTMLRenderer implementa export.MarkupRenderer con html/template; todo valor
// de la factura se escapa.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parsea las plantillas embebidas.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("invoice").
		Funcs(template.FuncMap{"columnClass": columnClass}).
		ParseFS(templatesFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("markup: parsear plantillas: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// MustNewHTMLRenderer como NewHTMLRenderer pero entra en pánico; las plantillas
// son embebidas, así que un error es de compilación del binario.
func MustNewHTMLRenderer() *HTMLRenderer {
	r, err := NewHTMLRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// RenderMarkup ejecuta la plantilla del layout del documento.
func (r *HTMLRenderer) RenderMarkup(doc document.Document) ([]byte, error) {
	name := string(document.ResolveLayout(doc.Layout))
	if r.tmpl.Lookup(name) == nil {
		name = string(entity.TemplateClassic)
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, doc); err != nil {
		return nil, fmt.Errorf("markup: ejecutar plantilla %s: %w", name, err)
	}
	return bytes.Map(xmlChar, buf.Bytes()), nil
}

// xmlChar descarta los caracteres que XML 1.0 no admite (controles C0 salvo
// tab y saltos de línea, U+FFFE y U+FFFF). html/template los deja pasar.
func xmlChar(r rune) rune {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return -1
	}
	return r
}

func columnClass(i int) string {
	if i < 0 || i >= len(columnClasses) {
		return ""
	}
	return columnClasses[i]
}
