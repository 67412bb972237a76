// Package document transforma una factura y sus totales en una vista
// estructurada, lista para presentar. Ambos adaptadores de exportación
// (markup y PDF) consumen esta vista y respetan SectionOrder.
package document

import (
	"strconv"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/totals"
)

// Section identifica un bloque del documento.
type Section string

const (
	SectionVendor       Section = "vendor"
	SectionHeading      Section = "heading"
	SectionBillTo       Section = "billTo"
	SectionMeta         Section = "meta"
	SectionItems        Section = "items"
	SectionTotals       Section = "totals"
	SectionPaymentTerms Section = "paymentTerms"
	SectionBankDetails  Section = "bankDetails"
)

// SectionOrder orden fijo de los bloques; es el contrato de los exportadores.
var SectionOrder = []Section{
	SectionVendor,
	SectionHeading,
	SectionBillTo,
	SectionMeta,
	SectionItems,
	SectionTotals,
	SectionPaymentTerms,
	SectionBankDetails,
}

// Field par etiqueta/valor ya formateado.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type VendorBlock struct {
	Name string `json:"name"`
	VAT  Field  `json:"vat"`
}

type BillToBlock struct {
	Caption      string   `json:"caption"`
	CompanyName  string   `json:"companyName"`
	AddressLines []string `json:"addressLines"`
}

// MetaBlock número, fecha, referencia y moneda, en ese orden.
type MetaBlock struct {
	Caption string  `json:"caption"`
	Rows    []Field `json:"rows"`
}

type ItemRow struct {
	MaterialNo  string `json:"materialNo"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

// ItemTable columnas: material, descripción, cantidad, unidad, precio, total de línea.
type ItemTable struct {
	Columns []string  `json:"columns"`
	Rows    []ItemRow `json:"rows"`
}

type TotalsBlock struct {
	Subtotal   Field `json:"subtotal"`
	Tax        Field `json:"tax"`
	GrandTotal Field `json:"grandTotal"`
}

type PaymentTermsBlock struct {
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

type BankDetailsBlock struct {
	Caption string  `json:"caption"`
	Rows    []Field `json:"rows"`
}

// Document vista presentacional de una factura.
type Document struct {
	Lang              Locale          `json:"lang"`
	Title             string          `json:"title"`
	InvoiceNumber     string          `json:"invoiceNumber"`
	RequestedTemplate entity.Template `json:"requestedTemplate"`
	Layout            entity.Template `json:"layout"`

	Vendor       VendorBlock       `json:"vendor"`
	Heading      string            `json:"heading"`
	BillTo       BillToBlock       `json:"billTo"`
	Meta         MetaBlock         `json:"meta"`
	Items        ItemTable         `json:"items"`
	Totals       TotalsBlock       `json:"totals"`
	PaymentTerms PaymentTermsBlock `json:"paymentTerms"`
	BankDetails  BankDetailsBlock  `json:"bankDetails"`
}

// ResolveLayout decide el layout concreto de una plantilla. Solo existe classic:
// modern, minimal y cualquier valor desconocido se presentan como classic.
func ResolveLayout(t entity.Template) entity.Template {
	switch t {
	case entity.TemplateClassic:
		return t
	default:
		return entity.TemplateClassic
	}
}

// Render construye el documento. locale solo cambia textos fijos y formato de
// fecha; los datos de la factura no se relocalizan. Nunca falla: locale y
// plantilla desconocidos usan los valores de respaldo.
func Render(inv entity.Invoice, t entity.InvoiceTotals, locale string) Document {
	lang := ResolveLocale(locale)
	l := labelSets[lang]
	currency := string(inv.Currency)

	rows := make([]ItemRow, 0, len(inv.LineItems))
	for _, it := range inv.LineItems {
		rows = append(rows, ItemRow{
			MaterialNo:  it.MaterialNo,
			Description: it.Description,
			Quantity:    strconv.Itoa(it.Quantity),
			Unit:        string(it.Unit),
			UnitPrice:   FormatAmount(it.Price),
			LineTotal:   FormatAmount(totals.LineTotal(it)),
		})
	}

	return Document{
		Lang:              lang,
		Title:             l.Invoice + " " + inv.InvoiceNumber,
		InvoiceNumber:     inv.InvoiceNumber,
		RequestedTemplate: inv.Template,
		Layout:            ResolveLayout(inv.Template),
		Vendor: VendorBlock{
			Name: inv.Vendor.Name,
			VAT:  Field{Label: l.VATNo, Value: inv.Vendor.VATNumber},
		},
		Heading: l.Invoice,
		BillTo: BillToBlock{
			Caption:      l.BillTo,
			CompanyName:  inv.Customer.CompanyName,
			AddressLines: SplitAddress(inv.Customer.Address),
		},
		Meta: MetaBlock{
			Caption: l.InvoiceDetails,
			Rows: []Field{
				{Label: l.InvoiceNumber, Value: inv.InvoiceNumber},
				{Label: l.InvoiceDate, Value: FormatDate(inv.InvoiceDate, l)},
				{Label: l.ReferencePO, Value: inv.ReferencePO},
				{Label: l.Currency, Value: currency},
			},
		},
		Items: ItemTable{
			Columns: []string{l.MaterialNo, l.Description, l.Qty, l.Unit, l.Price, l.Total},
			Rows:    rows,
		},
		Totals: TotalsBlock{
			Subtotal:   Field{Label: l.Subtotal, Value: money(FormatAmount(t.Subtotal), currency)},
			Tax:        Field{Label: l.Tax + " (" + inv.TaxRate.String() + "%)", Value: money(FormatAmount(t.TaxAmount), currency)},
			GrandTotal: Field{Label: l.GrandTotal, Value: money(FormatAmount(t.Total), currency)},
		},
		PaymentTerms: PaymentTermsBlock{
			Caption:     l.PaymentTerms,
			Description: inv.PaymentTerms.Description,
		},
		BankDetails: BankDetailsBlock{
			Caption: l.BankDetails,
			Rows: []Field{
				{Label: l.BankName, Value: inv.BankDetails.BankName},
				{Label: l.Account, Value: inv.BankDetails.AccountNumber},
				{Label: l.Swift, Value: inv.BankDetails.SwiftCode},
			},
		},
	}
}

func money(amount, currency string) string {
	if currency == "" {
		return amount
	}
	return amount + " " + currency
}
