package entity

import "github.com/shopspring/decimal"

// Template identifica la plantilla visual de la factura.
type Template string

// Plantillas disponibles. Solo classic tiene layout propio; modern y minimal
// se resuelven a classic en el renderer (ver document.ResolveLayout).
const (
	TemplateClassic Template = "classic"
	TemplateModern  Template = "modern"
	TemplateMinimal Template = "minimal"
)

// Valid indica si el valor pertenece al conjunto cerrado de plantillas.
func (t Template) Valid() bool {
	switch t {
	case TemplateClassic, TemplateModern, TemplateMinimal:
		return true
	}
	return false
}

// Currency es solo una etiqueta de presentación; no hay conversión.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyCHF Currency = "CHF"
)

// Valid indica si la moneda pertenece al conjunto cerrado.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyCHF:
		return true
	}
	return false
}

// Vendor datos del emisor.
type Vendor struct {
	Name      string `json:"name"`
	VATNumber string `json:"vatNumber"`
}

// Customer datos del receptor. Address es una sola cadena con componentes
// separados por ", " (el renderer la parte en líneas).
type Customer struct {
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
}

// BankDetails datos bancarios, todos texto libre.
type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	SwiftCode     string `json:"swiftCode"`
}

// PaymentTerms condiciones de pago.
type PaymentTerms struct {
	Description string `json:"description"`
	Days        int    `json:"days"`
}

// Invoice es el agregado raíz editado durante una sesión.
// InvoiceDate se guarda siempre como YYYY-MM-DD, sin importar el locale de presentación.
type Invoice struct {
	Template      Template        `json:"template"`
	Vendor        Vendor          `json:"vendor"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   string          `json:"invoiceDate"`
	ReferencePO   string          `json:"referencePO"`
	Currency      Currency        `json:"currency"`
	TaxRate       decimal.Decimal `json:"taxRate"` // porcentaje, normalmente 0–100
	Customer      Customer        `json:"customer"`
	LineItems     []LineItem      `json:"lineItems"`
	BankDetails   BankDetails     `json:"bankDetails"`
	PaymentTerms  PaymentTerms    `json:"paymentTerms"`
}

// InvoiceTotals totales derivados; nunca se almacenan.
type InvoiceTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"total"`
}
