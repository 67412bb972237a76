package invoice_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/invoice"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// fixedFactory devuelve una fábrica determinista: reloj fijo, ids secuenciales
// y un "azar" controlado por r.
func fixedFactory(now time.Time, r int) *invoice.Factory {
	n := 0
	return &invoice.Factory{
		Clock: func() time.Time { return now },
		NewID: func() string {
			n++
			return fmt.Sprintf("item_%d", n)
		},
		Intn: func(int) int { return r },
	}
}

var testNow = time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)

// ── Generación ────────────────────────────────────────────────────────────────

func TestInvoiceNumber_Formato(t *testing.T) {
	f := fixedFactory(testNow, 373)
	assert.Equal(t, "INV-2627-473", f.InvoiceNumber())
	assert.Regexp(t, invoice.InvoiceNumberPattern, f.InvoiceNumber())
}

func TestInvoiceNumber_LimitesDelRango(t *testing.T) {
	assert.Equal(t, "INV-2627-100", fixedFactory(testNow, 0).InvoiceNumber())
	assert.Equal(t, "INV-2627-999", fixedFactory(testNow, 899).InvoiceNumber())
}

func TestInvoiceNumber_CambioDeSiglo(t *testing.T) {
	f := fixedFactory(time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC), 0)
	assert.Equal(t, "INV-9900-100", f.InvoiceNumber(), "los años se rellenan con cero a dos dígitos")
}

func TestInvoiceNumber_FabricaReal(t *testing.T) {
	f := invoice.NewFactory()
	for i := 0; i < 200; i++ {
		assert.Regexp(t, invoice.InvoiceNumberPattern, f.InvoiceNumber())
	}
}

// ── Semilla ───────────────────────────────────────────────────────────────────

func TestNew_ValoresSemilla(t *testing.T) {
	inv := fixedFactory(testNow, 1).New()

	assert.Equal(t, entity.TemplateClassic, inv.Template)
	assert.Equal(t, "Component Suppliers S.A.", inv.Vendor.Name)
	assert.Equal(t, "DE1234567890", inv.Vendor.VATNumber)
	assert.Equal(t, "2026-10-14", inv.InvoiceDate)
	assert.Equal(t, "4500000297", inv.ReferencePO)
	assert.Equal(t, entity.CurrencyEUR, inv.Currency)
	assert.True(t, inv.TaxRate.Equal(decimal.NewFromInt(19)))
	assert.Equal(t, "Munich Production GmbH", inv.Customer.CompanyName)
	assert.Equal(t, "Industriestraße 12, München, Germany, 80331", inv.Customer.Address)
	assert.Equal(t, entity.BankDetails{BankName: "Sample Bank", AccountNumber: "9988776655", SwiftCode: "SAMPLE01"}, inv.BankDetails)
	assert.Equal(t, entity.PaymentTerms{Description: "Net 30 Days from Invoice Date", Days: 30}, inv.PaymentTerms)

	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "473", inv.LineItems[0].MaterialNo)
	assert.Equal(t, "Electronic Component X", inv.LineItems[0].Description)
	assert.Equal(t, 10, inv.LineItems[0].Quantity)
	assert.True(t, inv.LineItems[0].Price.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "475", inv.LineItems[1].MaterialNo)
	assert.True(t, inv.LineItems[1].Price.Equal(decimal.NewFromInt(10)))
	assert.NotEqual(t, inv.LineItems[0].ID, inv.LineItems[1].ID)
}

func TestReset_RestauraSemillaConNumeroYFechaNuevos(t *testing.T) {
	clock := testNow
	f := invoice.NewFactory()
	f.Clock = func() time.Time { return clock }

	inv := f.New()
	inv = invoice.SetVendorName(inv, "Otra Empresa")
	inv = invoice.SetTaxRate(inv, decimal.NewFromInt(7))
	inv = f.AddLineItem(inv)
	oldIDs := ids(inv)

	clock = clock.AddDate(1, 0, 1)
	reset := f.Reset()

	seed := f.New()
	assert.Equal(t, seed.Vendor, reset.Vendor)
	assert.True(t, reset.TaxRate.Equal(seed.TaxRate))
	assert.Equal(t, seed.Customer, reset.Customer)
	assert.Equal(t, seed.BankDetails, reset.BankDetails)
	assert.Equal(t, seed.PaymentTerms, reset.PaymentTerms)
	require.Len(t, reset.LineItems, 2)

	assert.Regexp(t, invoice.InvoiceNumberPattern, reset.InvoiceNumber)
	assert.Equal(t, "INV-2728", reset.InvoiceNumber[:8], "el número usa el año del reloj actual")
	assert.Equal(t, "2027-10-15", reset.InvoiceDate)
	for _, id := range ids(reset) {
		assert.NotContains(t, oldIDs, id, "reset debe generar ids de línea nuevos")
	}
}

func TestRegenerateInvoiceNumber_SoloCambiaElNumero(t *testing.T) {
	f := fixedFactory(testNow, 5)
	inv := invoice.SetInvoiceNumber(f.New(), "CUSTOM-1")
	f.Intn = func(int) int { return 42 }

	out := f.RegenerateInvoiceNumber(inv)
	assert.Equal(t, "INV-2627-142", out.InvoiceNumber)

	out.InvoiceNumber = inv.InvoiceNumber
	assert.Equal(t, inv, out, "el resto de campos no debe cambiar")
}

// ── Setters ───────────────────────────────────────────────────────────────────

func TestSetters_ReemplazanUnSoloCampo(t *testing.T) {
	base := fixedFactory(testNow, 1).New()

	cases := []struct {
		name  string
		apply func(entity.Invoice) entity.Invoice
		check func(t *testing.T, got entity.Invoice)
	}{
		{"template", func(i entity.Invoice) entity.Invoice { return invoice.SetTemplate(i, entity.TemplateModern) },
			func(t *testing.T, g entity.Invoice) { assert.Equal(t, entity.TemplateModern, g.Template) }},
		{"vendor.name", func(i entity.Invoice) entity.Invoice { return invoice.SetVendorName(i, "ACME") },
			func(t *testing.T, g entity.Invoice) {
				assert.Equal(t, "ACME", g.Vendor.Name)
				assert.Equal(t, base.Vendor.VATNumber, g.Vendor.VATNumber)
			}},
		{"vendor.vatNumber", func(i entity.Invoice) entity.Invoice { return invoice.SetVendorVATNumber(i, "ATU1") },
			func(t *testing.T, g entity.Invoice) {
				assert.Equal(t, "ATU1", g.Vendor.VATNumber)
				assert.Equal(t, base.Vendor.Name, g.Vendor.Name)
			}},
		{"invoiceDate", func(i entity.Invoice) entity.Invoice { return invoice.SetInvoiceDate(i, "2025-01-31") },
			func(t *testing.T, g entity.Invoice) { assert.Equal(t, "2025-01-31", g.InvoiceDate) }},
		{"referencePO", func(i entity.Invoice) entity.Invoice { return invoice.SetReferencePO(i, "PO-9") },
			func(t *testing.T, g entity.Invoice) { assert.Equal(t, "PO-9", g.ReferencePO) }},
		{"currency", func(i entity.Invoice) entity.Invoice { return invoice.SetCurrency(i, entity.CurrencyCHF) },
			func(t *testing.T, g entity.Invoice) { assert.Equal(t, entity.CurrencyCHF, g.Currency) }},
		{"taxRate negativo", func(i entity.Invoice) entity.Invoice { return invoice.SetTaxRate(i, decimal.NewFromInt(-5)) },
			func(t *testing.T, g entity.Invoice) { assert.True(t, g.TaxRate.Equal(decimal.NewFromInt(-5))) }},
		{"customer.companyName", func(i entity.Invoice) entity.Invoice { return invoice.SetCustomerCompanyName(i, "Kunde") },
			func(t *testing.T, g entity.Invoice) {
				assert.Equal(t, "Kunde", g.Customer.CompanyName)
				assert.Equal(t, base.Customer.Address, g.Customer.Address)
			}},
		{"customer.address", func(i entity.Invoice) entity.Invoice { return invoice.SetCustomerAddress(i, "A, B") },
			func(t *testing.T, g entity.Invoice) { assert.Equal(t, "A, B", g.Customer.Address) }},
		{"bankDetails.bankName", func(i entity.Invoice) entity.Invoice { return invoice.SetBankName(i, "Bank") },
			func(t *testing.T, g entity.Invoice) {
				assert.Equal(t, "Bank", g.BankDetails.BankName)
				assert.Equal(t, base.BankDetails.SwiftCode, g.BankDetails.SwiftCode)
			}},
		{"bankDetails.accountNumber", func(i entity.Invoice) entity.Invoice { return invoice.SetAccountNumber(i, "1") },
			func(t *testing.T, g entity.Invoice) { assert.Equal(t, "1", g.BankDetails.AccountNumber) }},
		{"bankDetails.swiftCode", func(i entity.Invoice) entity.Invoice { return invoice.SetSwiftCode(i, "X") },
			func(t *testing.T, g entity.Invoice) { assert.Equal(t, "X", g.BankDetails.SwiftCode) }},
		{"paymentTerms", func(i entity.Invoice) entity.Invoice {
			return invoice.SetPaymentTerms(i, entity.PaymentTerms{Description: "Net 14", Days: 14})
		}, func(t *testing.T, g entity.Invoice) { assert.Equal(t, 14, g.PaymentTerms.Days) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.apply(base)
			tc.check(t, got)
			assert.Equal(t, base.LineItems, got.LineItems)
			assert.Equal(t, base.InvoiceNumber, got.InvoiceNumber)
		})
	}
}

// ── Líneas ────────────────────────────────────────────────────────────────────

func TestAddLineItem_ValoresPorDefecto(t *testing.T) {
	f := fixedFactory(testNow, 1)
	base := f.New()
	out := f.AddLineItem(base)

	require.Len(t, out.LineItems, 3)
	assert.Len(t, base.LineItems, 2, "la factura original no debe mutar")
	added := out.LineItems[2]
	assert.Equal(t, 1, added.Quantity)
	assert.Equal(t, entity.UnitPC, added.Unit)
	assert.True(t, added.Price.IsZero())
	assert.Empty(t, added.MaterialNo)
	assert.Empty(t, added.Description)
}

func TestUpdateLineItem_ParcialConservaIDYPosicion(t *testing.T) {
	f := fixedFactory(testNow, 1)
	base := f.New()
	target := base.LineItems[1]

	qty := 3
	desc := "Copper Oxide (fine)"
	out := invoice.UpdateLineItem(base, target.ID, entity.LineItemPatch{Quantity: &qty, Description: &desc})

	got := out.LineItems[1]
	assert.Equal(t, target.ID, got.ID)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, desc, got.Description)
	assert.Equal(t, target.MaterialNo, got.MaterialNo)
	assert.True(t, got.Price.Equal(target.Price))
	assert.Equal(t, 10, base.LineItems[1].Quantity, "la factura original no debe mutar")
}

func TestUpdateLineItem_IDDesconocidoEsNoOp(t *testing.T) {
	base := fixedFactory(testNow, 1).New()
	qty := 99
	out := invoice.UpdateLineItem(base, "no-existe", entity.LineItemPatch{Quantity: &qty})
	assert.Equal(t, base, out)
}

func TestRemoveLineItem_ConservaOrden(t *testing.T) {
	f := fixedFactory(testNow, 1)
	inv := f.AddLineItem(f.New())
	first, middle, last := inv.LineItems[0].ID, inv.LineItems[1].ID, inv.LineItems[2].ID

	out := invoice.RemoveLineItem(inv, middle)
	assert.Equal(t, []string{first, last}, ids(out))
	assert.Len(t, inv.LineItems, 3, "la factura original no debe mutar")
}

func TestRemoveLineItem_SinMinimoEnElModelo(t *testing.T) {
	f := fixedFactory(testNow, 1)
	inv := f.New()
	for _, id := range ids(inv) {
		inv = invoice.RemoveLineItem(inv, id)
	}
	assert.Empty(t, inv.LineItems)
	assert.Equal(t, inv, invoice.RemoveLineItem(inv, "item_1"), "id ausente es no-op")
}

func TestLineItemIDs_UnicosTrasAltasYBajas(t *testing.T) {
	f := invoice.NewFactory()
	inv := f.New()
	seen := map[string]bool{}
	for _, id := range ids(inv) {
		seen[id] = true
	}

	for i := 0; i < 500; i++ {
		inv = f.AddLineItem(inv)
		added := inv.LineItems[len(inv.LineItems)-1].ID
		require.False(t, seen[added], "id repetido: %s", added)
		seen[added] = true
		if i%2 == 0 {
			inv = invoice.RemoveLineItem(inv, inv.LineItems[0].ID)
		}
	}
}

func TestFindLineItem(t *testing.T) {
	inv := fixedFactory(testNow, 1).New()
	item, ok := invoice.FindLineItem(inv, inv.LineItems[0].ID)
	assert.True(t, ok)
	assert.Equal(t, "473", item.MaterialNo)

	_, ok = invoice.FindLineItem(inv, "x")
	assert.False(t, ok)
}

func ids(inv entity.Invoice) []string {
	out := make([]string, 0, len(inv.LineItems))
	for _, it := range inv.LineItems {
		out = append(out, it.ID)
	}
	return out
}
