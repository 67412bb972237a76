// Package totals calcula los totales derivados de una factura (servicio de dominio).
package totals

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// MoneyPlaces decimales de los importes monetarios.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// Compute calcula subtotal, impuesto y total:
//
//	Subtotal  = round(Σ cantidad × precio, 2)
//	TaxAmount = round(Subtotal × taxRate / 100, 2)
//	Total     = round(Subtotal + TaxAmount, 2)
//
// Redondeo half away from zero al céntimo. Solo dependen de las líneas y la tasa.
func Compute(items []entity.LineItem, taxRate decimal.Decimal) entity.InvoiceTotals {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(LineTotal(it))
	}
	subtotal := sum.Round(MoneyPlaces)
	tax := subtotal.Mul(taxRate).Div(hundred).Round(MoneyPlaces)
	return entity.InvoiceTotals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax).Round(MoneyPlaces),
	}
}

// ForInvoice atajo de Compute para el agregado completo.
func ForInvoice(inv entity.Invoice) entity.InvoiceTotals {
	return Compute(inv.LineItems, inv.TaxRate)
}

// LineTotal cantidad × precio sin redondear.
func LineTotal(it entity.LineItem) decimal.Decimal {
	return decimal.NewFromInt(int64(it.Quantity)).Mul(it.Price)
}
