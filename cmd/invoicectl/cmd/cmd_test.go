package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/pkg/config"
)

// run ejecuta el comando raíz con args y devuelve stdout y stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)
	appCfg = cfg

	newOutput, totalsJSON = "", false
	exportLocale, exportFilename, exportDir, exportStdout = "", "", ".", false

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func seedFile(t *testing.T) (string, entity.Invoice) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "factura.json")
	_, _, err := run(t, "", "new", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var inv entity.Invoice
	require.NoError(t, json.Unmarshal(data, &inv))
	return path, inv
}

func TestNew_FacturaSemilla(t *testing.T) {
	out, _, err := run(t, "", "new")
	require.NoError(t, err)

	var inv entity.Invoice
	require.NoError(t, json.Unmarshal([]byte(out), &inv))
	assert.Regexp(t, `^INV-\d{4}-\d{3}$`, inv.InvoiceNumber)
	assert.Len(t, inv.LineItems, 2)
	assert.Equal(t, entity.CurrencyEUR, inv.Currency)
}

func TestTotals_Texto(t *testing.T) {
	path, _ := seedFile(t)

	out, _, err := run(t, "", "totals", path)
	require.NoError(t, err)
	assert.Equal(t, "Subtotal: 600.00 EUR\nTax (19%): 114.00 EUR\nTotal: 714.00 EUR\n", out)
}

func TestTotals_JSONDesdeStdin(t *testing.T) {
	seed, _, err := run(t, "", "new")
	require.NoError(t, err)

	out, _, err := run(t, seed, "totals", "-", "--json")
	require.NoError(t, err)

	var got entity.InvoiceTotals
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "714", got.Total.String())
}

func TestTotals_JSONInvalido(t *testing.T) {
	_, _, err := run(t, "{", "totals", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decodificar factura")
}

func TestExport_HTML(t *testing.T) {
	path, inv := seedFile(t)
	dir := t.TempDir()

	_, stderr, err := run(t, "", "export", "html", path, "-o", dir)
	require.NoError(t, err)

	file := filepath.Join(dir, "Invoice-"+inv.InvoiceNumber+".html")
	assert.Equal(t, file+"\n", stderr)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INVOICE "+inv.InvoiceNumber)
}

func TestExport_HTMLAlemanConNombre(t *testing.T) {
	path, _ := seedFile(t)

	out, _, err := run(t, "", "export", "html", path, "--locale", "de", "--filename", "borrador", "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, "RECHNUNG")
}

func TestExport_PDF(t *testing.T) {
	path, _ := seedFile(t)
	dir := t.TempDir()

	_, _, err := run(t, "", "export", "pdf", path, "-o", dir, "--filename", "borrador")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "borrador.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExport_FormatoDesconocido(t *testing.T) {
	path, _ := seedFile(t)

	_, _, err := run(t, "", "export", "docx", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no soportado")
}
