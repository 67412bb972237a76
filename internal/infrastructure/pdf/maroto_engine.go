// Package pdf implementa el motor de páginas fijas con Maroto v2: dibuja la
// vista del documento directamente sobre páginas A4, sin navegador.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  PROVEEDOR: Nombre + NIF        │            INVOICE        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAR A: Cliente + dirección │ DETALLES: N°, fecha, PO  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Descripción | Cant | Ud | Precio | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│                     Subtotal / Impuesto / TOTAL              │
//	│  CONDICIONES DE PAGO                                         │
//	│  DATOS BANCARIOS: Banco | Cuenta | SWIFT                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/facturador/internal/application/export"
	"github.com/jhoicas/facturador/internal/domain/document"
)

// EngineName nombre del motor en configuración y logs.
const EngineName = "maroto"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorInk    = &props.Color{Red: 31, Green: 41, Blue: 55}
	colorMuted  = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorRule   = &props.Color{Red: 229, Green: 231, Blue: 235}
	colorStripe = &props.Color{Red: 249, Green: 250, Blue: 251}
)

// MarginsMM márgenes de la página en milímetros.
type MarginsMM struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins 10 mm por lado.
var DefaultMargins = MarginsMM{Top: 10, Right: 10, Bottom: 10, Left: 10}

// MarotoEngine implementa export.LayoutEngine usando Maroto v2.
type MarotoEngine struct {
	margins MarginsMM
}

var _ export.LayoutEngine = (*MarotoEngine)(nil)

// NewMarotoEngine construye el motor con los márgenes por defecto.
func NewMarotoEngine() *MarotoEngine { return &MarotoEngine{margins: DefaultMargins} }

// WithMargins devuelve una copia del motor con otros márgenes.
func (e *MarotoEngine) WithMargins(m MarginsMM) *MarotoEngine {
	return &MarotoEngine{margins: m}
}

// Name implementa export.LayoutEngine.
func (e *MarotoEngine) Name() string { return EngineName }

// Paginate dibuja las secciones en el orden fijo del documento y devuelve el PDF.
// Las filas que no caben pasan a la página siguiente.
func (e *MarotoEngine) Paginate(ctx context.Context, view export.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	doc := view.Document

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(e.margins.Left).WithRightMargin(e.margins.Right).
		WithTopMargin(e.margins.Top).WithBottomMargin(e.margins.Bottom).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Vendor.Name, true).
		Build()

	m := maroto.New(cfg)
	for _, section := range document.SectionOrder {
		build, ok := sectionRows[section]
		if !ok {
			continue
		}
		m.AddRows(build(doc)...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// sectionRows filas de cada sección. vendor y heading comparten la primera fila
// (izquierda y derecha), igual que billTo y meta; la sección de la izquierda
// dibuja ambas y la de la derecha no añade filas.
var sectionRows = map[document.Section]func(document.Document) []core.Row{
	document.SectionVendor:       headerRows,
	document.SectionHeading:      func(document.Document) []core.Row { return nil },
	document.SectionBillTo:       partiesRows,
	document.SectionMeta:         func(document.Document) []core.Row { return nil },
	document.SectionItems:        itemRows,
	document.SectionTotals:       totalsRows,
	document.SectionPaymentTerms: paymentTermsRows,
	document.SectionBankDetails:  bankDetailsRows,
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRows: proveedor + NIF (izq) y título (der).
func headerRows(doc document.Document) []core.Row {
	return []core.Row{
		row.New(18).Add(
			col.New(7).Add(
				text.New(doc.Vendor.Name, props.Text{
					Style: fontstyle.Bold, Size: 14, Color: colorInk, Top: 1,
				}),
				text.New(doc.Vendor.VAT.Label+": "+doc.Vendor.VAT.Value, props.Text{
					Size: 9, Top: 10, Color: colorMuted,
				}),
			),
			col.New(5).Add(
				text.New(doc.Heading, props.Text{
					Size: 22, Align: align.Right, Color: colorInk, Top: 2,
				}),
			),
		),
		line.NewRow(2, props.Line{Color: colorInk, Thickness: 0.6}),
		row.New(4),
	}
}

// partiesRows: cliente con su dirección (izq) y detalles de la factura (der).
func partiesRows(doc document.Document) []core.Row {
	const lineH = 5.0
	lines := len(doc.BillTo.AddressLines) + 1
	if n := len(doc.Meta.Rows); n > lines {
		lines = n
	}
	height := 7 + float64(lines)*lineH

	left := col.New(6).Add(caption(doc.BillTo.Caption))
	left.Add(text.New(doc.BillTo.CompanyName, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorInk, Top: 7,
	}))
	for i, l := range doc.BillTo.AddressLines {
		left.Add(text.New(l, props.Text{
			Size: 9, Color: colorInk, Top: 7 + float64(i+1)*lineH,
		}))
	}

	labels := col.New(3).Add(caption(doc.Meta.Caption))
	values := col.New(3)
	for i, f := range doc.Meta.Rows {
		top := 7 + float64(i)*lineH
		labels.Add(text.New(f.Label, props.Text{Size: 9, Color: colorMuted, Top: top}))
		values.Add(text.New(f.Value, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorInk, Top: top, Align: align.Right,
		}))
	}

	return []core.Row{
		row.New(height).Add(left, labels, values),
		row.New(4),
	}
}

// itemRows: cabecera de la tabla y una fila por línea.
func itemRows(doc document.Document) []core.Row {
	sizes := []int{2, 4, 1, 1, 2, 2}
	aligns := []align.Type{align.Left, align.Left, align.Center, align.Center, align.Right, align.Right}

	header := make([]core.Col, 0, len(doc.Items.Columns))
	for i, c := range doc.Items.Columns {
		header = append(header, col.New(sizes[i]).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: aligns[i],
			Color: colorMuted, Top: 2, Left: 1, Right: 1,
		})))
	}

	rows := make([]core.Row, 0, len(doc.Items.Rows)*2+2)
	rows = append(rows,
		row.New(8).Add(header...).WithStyle(&props.Cell{BackgroundColor: colorStripe}),
		line.NewRow(1, props.Line{Color: colorRule, Thickness: 0.5}),
	)
	for _, it := range doc.Items.Rows {
		cells := []string{it.MaterialNo, it.Description, it.Quantity, it.Unit, it.UnitPrice, it.LineTotal}
		cols := make([]core.Col, 0, len(cells))
		for i, v := range cells {
			cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
				Size: 8, Align: aligns[i], Top: 1.5, Left: 1, Right: 1, Color: colorInk,
			})))
		}
		rows = append(rows,
			row.New(7).Add(cols...),
			line.NewRow(0.5, props.Line{Color: colorRule, Thickness: 0.2}),
		)
	}
	return append(rows, row.New(4))
}

// totalsRows: bloque de totales alineado a la derecha; el total general destaca.
func totalsRows(doc document.Document) []core.Row {
	total := func(f document.Field, grand bool) core.Row {
		p := props.Text{Size: 9, Align: align.Right, Color: colorMuted, Top: 1.5}
		v := props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold, Color: colorInk, Top: 1.5, Right: 1}
		if grand {
			p.Size, p.Style, p.Color = 11, fontstyle.Bold, colorInk
			v.Size = 11
		}
		return row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(f.Label, p)),
			col.New(3).Add(text.New(f.Value, v)),
		)
	}
	return []core.Row{
		total(doc.Totals.Subtotal, false),
		total(doc.Totals.Tax, false),
		row.New(1).Add(col.New(6), col.New(6).Add(line.New(props.Line{Color: colorInk, Thickness: 0.6}))),
		total(doc.Totals.GrandTotal, true),
		row.New(6),
	}
}

func paymentTermsRows(doc document.Document) []core.Row {
	return []core.Row{
		row.New(14).Add(col.New(12).Add(
			caption(doc.PaymentTerms.Caption),
			text.New(doc.PaymentTerms.Description, props.Text{
				Size: 9, Color: colorInk, Top: 7, Left: 2,
			}),
		)).WithStyle(&props.Cell{BackgroundColor: colorStripe}),
		row.New(6),
	}
}

// bankDetailsRows: banco, cuenta y SWIFT en tres columnas.
func bankDetailsRows(doc document.Document) []core.Row {
	cols := make([]core.Col, 0, len(doc.BankDetails.Rows))
	for _, f := range doc.BankDetails.Rows {
		cols = append(cols, col.New(4).Add(
			text.New(f.Label, props.Text{Size: 8, Color: colorMuted, Top: 1}),
			text.New(f.Value, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorInk, Top: 6}),
		))
	}
	return []core.Row{
		line.NewRow(1, props.Line{Color: colorRule, Thickness: 0.3}),
		row.New(7).Add(col.New(12).Add(caption(doc.BankDetails.Caption))),
		row.New(12).Add(cols...),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// caption título de bloque en gris y mayúsculas tal como llega del documento.
func caption(s string) core.Component {
	return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorMuted, Top: 1})
}
