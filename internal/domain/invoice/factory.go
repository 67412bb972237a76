// Package invoice implementa las operaciones del modelo de factura.
// Todas son transformaciones puras: reciben un entity.Invoice y devuelven uno
// nuevo sin modificar el original.
package invoice

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// Valores semilla de una factura nueva.
const (
	DefaultVendorName   = "Component Suppliers S.A."
	DefaultVendorVAT    = "DE1234567890"
	DefaultReferencePO  = "4500000297"
	DefaultCurrency     = entity.CurrencyEUR
	DefaultUnit         = entity.UnitPC
	DefaultCustomerName = "Munich Production GmbH"
	DefaultAddress      = "Industriestraße 12, München, Germany, 80331"
	DefaultBankName     = "Sample Bank"
	DefaultAccount      = "9988776655"
	DefaultSwift        = "SAMPLE01"
)

// DefaultTaxRate tasa por defecto (19 %).
var DefaultTaxRate = decimal.NewFromInt(19)

// DefaultPaymentTerms condiciones de pago por defecto.
var DefaultPaymentTerms = entity.PaymentTerms{Description: "Net 30 Days from Invoice Date", Days: 30}

// InvoiceNumberPattern formato de los números generados: INV-YYYY-NNN.
var InvoiceNumberPattern = regexp.MustCompile(`^INV-\d{4}-[1-9]\d{2}$`)

// Factory agrupa las fuentes no deterministas (reloj, ids, azar) para poder
// inyectarlas en tests.
type Factory struct {
	Clock func() time.Time
	NewID func() string
	Intn  func(n int) int
}

// NewFactory construye la fábrica de producción: reloj del sistema, UUIDv7
// (ordenado por tiempo + aleatorio, monótono dentro del proceso) y math/rand/v2.
func NewFactory() *Factory {
	return &Factory{
		Clock: time.Now,
		NewID: func() string { return uuid.Must(uuid.NewV7()).String() },
		Intn:  rand.IntN,
	}
}

// InvoiceNumber genera INV-{YY}{YY+1}-{R} con R uniforme en [100, 999].
// Es una ayuda de presentación, no una clave única.
func (f *Factory) InvoiceNumber() string {
	year := f.Clock().Year()
	return fmt.Sprintf("INV-%02d%02d-%d", year%100, (year+1)%100, 100+f.Intn(900))
}

// Today devuelve la fecha actual en formato ISO YYYY-MM-DD.
func (f *Factory) Today() string {
	return f.Clock().Format(time.DateOnly)
}

// NewLineItem crea una línea vacía con identificador nuevo.
func (f *Factory) NewLineItem() entity.LineItem {
	return entity.LineItem{
		ID:       f.NewID(),
		Quantity: 1,
		Unit:     DefaultUnit,
		Price:    decimal.Zero,
	}
}

// New devuelve la factura semilla de una sesión: número y fecha frescos y dos
// líneas de ejemplo.
func (f *Factory) New() entity.Invoice {
	return entity.Invoice{
		Template: entity.TemplateClassic,
		Vendor: entity.Vendor{
			Name:      DefaultVendorName,
			VATNumber: DefaultVendorVAT,
		},
		InvoiceNumber: f.InvoiceNumber(),
		InvoiceDate:   f.Today(),
		ReferencePO:   DefaultReferencePO,
		Currency:      DefaultCurrency,
		TaxRate:       DefaultTaxRate,
		Customer: entity.Customer{
			CompanyName: DefaultCustomerName,
			Address:     DefaultAddress,
		},
		LineItems: []entity.LineItem{
			{
				ID:          f.NewID(),
				MaterialNo:  "473",
				Description: "Electronic Component X",
				Quantity:    10,
				Unit:        entity.UnitPC,
				Price:       decimal.NewFromInt(50),
			},
			{
				ID:          f.NewID(),
				MaterialNo:  "475",
				Description: "Copper Oxide",
				Quantity:    10,
				Unit:        entity.UnitPC,
				Price:       decimal.NewFromInt(10),
			},
		},
		BankDetails: entity.BankDetails{
			BankName:      DefaultBankName,
			AccountNumber: DefaultAccount,
			SwiftCode:     DefaultSwift,
		},
		PaymentTerms: DefaultPaymentTerms,
	}
}

// Reset reemplaza la factura completa por la semilla. Número, fecha e ids de
// línea se regeneran; no se reutiliza nada de la factura anterior.
func (f *Factory) Reset() entity.Invoice {
	return f.New()
}

// RegenerateInvoiceNumber cambia solo el número de factura.
func (f *Factory) RegenerateInvoiceNumber(inv entity.Invoice) entity.Invoice {
	inv.InvoiceNumber = f.InvoiceNumber()
	return inv
}

// AddLineItem agrega al final una línea nueva con valores por defecto.
func (f *Factory) AddLineItem(inv entity.Invoice) entity.Invoice {
	items := make([]entity.LineItem, 0, len(inv.LineItems)+1)
	items = append(items, inv.LineItems...)
	inv.LineItems = append(items, f.NewLineItem())
	return inv
}
