package document

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// Locale etiqueta de idioma soportada por el renderer.
type Locale string

// Locales soportados. DefaultLocale es el respaldo para cualquier valor desconocido.
const (
	LocaleEN      Locale = "en"
	LocaleDE      Locale = "de"
	DefaultLocale        = LocaleEN
)

// Labels textos fijos de un locale. Es un registro cerrado: cada clave existe
// en cada idioma (lo verifica TestLabels_Completos).
type Labels struct {
	Invoice        string
	VATNo          string
	BillTo         string
	InvoiceDetails string
	InvoiceNumber  string
	InvoiceDate    string
	ReferencePO    string
	Currency       string
	MaterialNo     string
	Description    string
	Qty            string
	Unit           string
	Price          string
	Total          string
	Subtotal       string
	Tax            string
	GrandTotal     string
	PaymentTerms   string
	BankDetails    string
	BankName       string
	Account        string
	Swift          string

	// Months nombres abreviados de mes, enero primero.
	Months [12]string
	// DateFormat recibe día, mes abreviado y año.
	DateFormat string

	Templates  map[entity.Template]string
	Units      map[entity.Unit]string
	Currencies map[entity.Currency]string
}

var labelSets = map[Locale]Labels{
	LocaleEN: {
		Invoice:        "INVOICE",
		VATNo:          "VAT No",
		BillTo:         "Bill To:",
		InvoiceDetails: "Invoice Details:",
		InvoiceNumber:  "Invoice #",
		InvoiceDate:    "Invoice Date",
		ReferencePO:    "Ref. PO",
		Currency:       "Currency",
		MaterialNo:     "Material No.",
		Description:    "Description",
		Qty:            "Qty",
		Unit:           "Unit",
		Price:          "Price",
		Total:          "Total",
		Subtotal:       "Subtotal",
		Tax:            "Tax",
		GrandTotal:     "TOTAL",
		PaymentTerms:   "Payment Terms",
		BankDetails:    "Bank Details:",
		BankName:       "Bank Name",
		Account:        "Account",
		Swift:          "SWIFT",
		Months:         [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		DateFormat:     "%02d %s %d",
		Templates: map[entity.Template]string{
			entity.TemplateClassic: "Classic",
			entity.TemplateModern:  "Modern",
			entity.TemplateMinimal: "Minimal",
		},
		Units: map[entity.Unit]string{
			entity.UnitPC:  "PC (Piece)",
			entity.UnitST:  "ST (Stück)",
			entity.UnitEA:  "EA (Each)",
			entity.UnitKG:  "KG (Kilogram)",
			entity.UnitM:   "M (Meter)",
			entity.UnitL:   "L (Liter)",
			entity.UnitHR:  "HR (Hour)",
			entity.UnitBOX: "BOX (Box)",
		},
		Currencies: map[entity.Currency]string{
			entity.CurrencyEUR: "EUR (Euro)",
			entity.CurrencyUSD: "USD (US Dollar)",
			entity.CurrencyGBP: "GBP (British Pound)",
			entity.CurrencyCHF: "CHF (Swiss Franc)",
		},
	},
	LocaleDE: {
		Invoice:        "RECHNUNG",
		VATNo:          "USt-IdNr.",
		BillTo:         "Rechnung an:",
		InvoiceDetails: "Rechnungsdetails:",
		InvoiceNumber:  "Rechnungsnr.",
		InvoiceDate:    "Rechnungsdatum",
		ReferencePO:    "Bestellreferenz",
		Currency:       "Währung",
		MaterialNo:     "Materialnr.",
		Description:    "Beschreibung",
		Qty:            "Menge",
		Unit:           "Einheit",
		Price:          "Preis",
		Total:          "Gesamt",
		Subtotal:       "Zwischensumme",
		Tax:            "Steuer",
		GrandTotal:     "GESAMT",
		PaymentTerms:   "Zahlungsbedingungen",
		BankDetails:    "Bankdaten:",
		BankName:       "Bankname",
		Account:        "Konto",
		Swift:          "SWIFT",
		Months:         [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
		DateFormat:     "%02d. %s %d",
		Templates: map[entity.Template]string{
			entity.TemplateClassic: "Klassisch",
			entity.TemplateModern:  "Modern",
			entity.TemplateMinimal: "Minimal",
		},
		Units: map[entity.Unit]string{
			entity.UnitPC:  "PC (Stück)",
			entity.UnitST:  "ST (Stück)",
			entity.UnitEA:  "EA (Stück)",
			entity.UnitKG:  "KG (Kilogramm)",
			entity.UnitM:   "M (Meter)",
			entity.UnitL:   "L (Liter)",
			entity.UnitHR:  "HR (Stunde)",
			entity.UnitBOX: "BOX (Karton)",
		},
		Currencies: map[entity.Currency]string{
			entity.CurrencyEUR: "EUR (Euro)",
			entity.CurrencyUSD: "USD (US-Dollar)",
			entity.CurrencyGBP: "GBP (Britisches Pfund)",
			entity.CurrencyCHF: "CHF (Schweizer Franken)",
		},
	},
}

// Locales lista los locales soportados; el primero es el de respaldo.
var Locales = []Locale{LocaleEN, LocaleDE}

var matcher = language.NewMatcher([]language.Tag{language.English, language.German})

// ResolveLocale normaliza una etiqueta BCP 47 ("de-DE", "de_AT", "EN") al
// locale soportado más cercano. Cualquier valor no reconocido cae en DefaultLocale.
func ResolveLocale(tag string) Locale {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return DefaultLocale
	}
	t, err := language.Parse(tag)
	if err != nil {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No || idx < 0 || idx >= len(Locales) {
		return DefaultLocale
	}
	return Locales[idx]
}

// LabelsFor devuelve el registro de textos del locale (con respaldo).
func LabelsFor(tag string) Labels {
	return labelSets[ResolveLocale(tag)]
}
