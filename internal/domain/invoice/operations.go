package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturador/internal/domain/entity"
)

// ── Setters ──────────────────────────────────────────────────────────────────
// Cada setter reemplaza exactamente un campo. No validan: la coerción de valores
// es responsabilidad de la capa de presentación.

func SetTemplate(inv entity.Invoice, t entity.Template) entity.Invoice {
	inv.Template = t
	return inv
}

func SetVendorName(inv entity.Invoice, name string) entity.Invoice {
	inv.Vendor.Name = name
	return inv
}

func SetVendorVATNumber(inv entity.Invoice, vat string) entity.Invoice {
	inv.Vendor.VATNumber = vat
	return inv
}

func SetInvoiceNumber(inv entity.Invoice, number string) entity.Invoice {
	inv.InvoiceNumber = number
	return inv
}

// SetInvoiceDate espera YYYY-MM-DD; no se valida aquí.
func SetInvoiceDate(inv entity.Invoice, date string) entity.Invoice {
	inv.InvoiceDate = date
	return inv
}

func SetReferencePO(inv entity.Invoice, po string) entity.Invoice {
	inv.ReferencePO = po
	return inv
}

func SetCurrency(inv entity.Invoice, c entity.Currency) entity.Invoice {
	inv.Currency = c
	return inv
}

// SetTaxRate acepta cualquier valor, incluso negativo.
func SetTaxRate(inv entity.Invoice, rate decimal.Decimal) entity.Invoice {
	inv.TaxRate = rate
	return inv
}

func SetCustomerCompanyName(inv entity.Invoice, name string) entity.Invoice {
	inv.Customer.CompanyName = name
	return inv
}

func SetCustomerAddress(inv entity.Invoice, address string) entity.Invoice {
	inv.Customer.Address = address
	return inv
}

func SetBankName(inv entity.Invoice, name string) entity.Invoice {
	inv.BankDetails.BankName = name
	return inv
}

func SetAccountNumber(inv entity.Invoice, account string) entity.Invoice {
	inv.BankDetails.AccountNumber = account
	return inv
}

func SetSwiftCode(inv entity.Invoice, swift string) entity.Invoice {
	inv.BankDetails.SwiftCode = swift
	return inv
}

func SetPaymentTerms(inv entity.Invoice, terms entity.PaymentTerms) entity.Invoice {
	inv.PaymentTerms = terms
	return inv
}

// ── Líneas ───────────────────────────────────────────────────────────────────

// UpdateLineItem aplica patch a la línea con ese id conservando posición e id.
// Si no existe, devuelve la factura sin cambios.
func UpdateLineItem(inv entity.Invoice, id string, patch entity.LineItemPatch) entity.Invoice {
	idx := indexOf(inv.LineItems, id)
	if idx < 0 {
		return inv
	}
	items := make([]entity.LineItem, len(inv.LineItems))
	copy(items, inv.LineItems)
	items[idx] = patch.Apply(items[idx])
	inv.LineItems = items
	return inv
}

// RemoveLineItem elimina la línea con ese id manteniendo el orden del resto.
// No impone un mínimo de líneas; si el id no existe es un no-op.
func RemoveLineItem(inv entity.Invoice, id string) entity.Invoice {
	idx := indexOf(inv.LineItems, id)
	if idx < 0 {
		return inv
	}
	items := make([]entity.LineItem, 0, len(inv.LineItems)-1)
	items = append(items, inv.LineItems[:idx]...)
	inv.LineItems = append(items, inv.LineItems[idx+1:]...)
	return inv
}

// FindLineItem busca una línea por id.
func FindLineItem(inv entity.Invoice, id string) (entity.LineItem, bool) {
	idx := indexOf(inv.LineItems, id)
	if idx < 0 {
		return entity.LineItem{}, false
	}
	return inv.LineItems[idx], true
}

func indexOf(items []entity.LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
