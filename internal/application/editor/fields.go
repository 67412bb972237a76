package editor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoice"
)

// Campos editables de la cabecera, con la ruta que usa el formulario.
const (
	FieldTemplate            = "template"
	FieldVendorName          = "vendor.name"
	FieldVendorVATNumber     = "vendor.vatNumber"
	FieldInvoiceNumber       = "invoiceNumber"
	FieldInvoiceDate         = "invoiceDate"
	FieldReferencePO         = "referencePO"
	FieldCurrency            = "currency"
	FieldTaxRate             = "taxRate"
	FieldCustomerCompanyName = "customer.companyName"
	FieldCustomerAddress     = "customer.address"
	FieldBankName            = "bankDetails.bankName"
	FieldAccountNumber       = "bankDetails.accountNumber"
	FieldSwiftCode           = "bankDetails.swiftCode"
	FieldPaymentTerms        = "paymentTerms"
)

// Fields todos los campos en el orden del formulario.
var Fields = []string{
	FieldTemplate,
	FieldVendorName, FieldVendorVATNumber,
	FieldInvoiceNumber, FieldInvoiceDate, FieldReferencePO, FieldCurrency, FieldTaxRate,
	FieldCustomerCompanyName, FieldCustomerAddress,
	FieldBankName, FieldAccountNumber, FieldSwiftCode,
	FieldPaymentTerms,
}

// setters de texto: el valor debe ser un string JSON.
var textSetters = map[string]func(entity.Invoice, string) entity.Invoice{
	FieldVendorName:          invoice.SetVendorName,
	FieldVendorVATNumber:     invoice.SetVendorVATNumber,
	FieldInvoiceNumber:       invoice.SetInvoiceNumber,
	FieldInvoiceDate:         invoice.SetInvoiceDate,
	FieldReferencePO:         invoice.SetReferencePO,
	FieldCustomerCompanyName: invoice.SetCustomerCompanyName,
	FieldCustomerAddress:     invoice.SetCustomerAddress,
	FieldBankName:            invoice.SetBankName,
	FieldAccountNumber:       invoice.SetAccountNumber,
	FieldSwiftCode:           invoice.SetSwiftCode,
}

// setField traduce un valor del formulario a la operación del núcleo. Los
// enumerados fuera de su conjunto se rechazan; los números se coercionan.
func setField(inv entity.Invoice, field string, raw json.RawMessage) (entity.Invoice, error) {
	if set, ok := textSetters[field]; ok {
		v, ok := rawString(raw)
		if !ok {
			return inv, invalid("%s: se esperaba texto", field)
		}
		return set(inv, v), nil
	}

	switch field {
	case FieldTemplate:
		v, _ := rawString(raw)
		t := entity.Template(v)
		if !t.Valid() {
			return inv, invalid("template %q no soportada", v)
		}
		return invoice.SetTemplate(inv, t), nil

	case FieldCurrency:
		v, _ := rawString(raw)
		c := entity.Currency(v)
		if !c.Valid() {
			return inv, invalid("moneda %q no soportada", v)
		}
		return invoice.SetCurrency(inv, c), nil

	case FieldTaxRate:
		v, ok := rawText(raw)
		if !ok {
			return inv, invalid("taxRate: se esperaba número o texto")
		}
		return invoice.SetTaxRate(inv, ParseTaxRate(v)), nil

	case FieldPaymentTerms:
		if v, ok := rawString(raw); ok {
			terms := inv.PaymentTerms
			terms.Description = v
			return invoice.SetPaymentTerms(inv, terms), nil
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return inv, invalid("paymentTerms: se esperaba objeto o texto")
		}
		terms := inv.PaymentTerms
		if err := json.Unmarshal(trimmed, &terms); err != nil {
			return inv, invalid("paymentTerms: %v", err)
		}
		return invoice.SetPaymentTerms(inv, terms), nil
	}

	return inv, invalid("campo %q desconocido", field)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("editor: %s: %w", fmt.Sprintf(format, args...), domain.ErrInvalidInput)
}
